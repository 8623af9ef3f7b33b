package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal"
	"github.com/AMOUAN/projet-electro/internal/apikey"
	apikeyPostgres "github.com/AMOUAN/projet-electro/internal/apikey/postgres"
	"github.com/AMOUAN/projet-electro/internal/application"
	applicationPostgres "github.com/AMOUAN/projet-electro/internal/application/postgres"
	"github.com/AMOUAN/projet-electro/internal/auth"
	"github.com/AMOUAN/projet-electro/internal/company"
	companyPostgres "github.com/AMOUAN/projet-electro/internal/company/postgres"
	"github.com/AMOUAN/projet-electro/internal/contract"
	contractPostgres "github.com/AMOUAN/projet-electro/internal/contract/postgres"
	"github.com/AMOUAN/projet-electro/internal/network"
	networkPostgres "github.com/AMOUAN/projet-electro/internal/network/postgres"
	"github.com/AMOUAN/projet-electro/internal/notification"
	notificationPostgres "github.com/AMOUAN/projet-electro/internal/notification/postgres"
	"github.com/AMOUAN/projet-electro/internal/role"
	rolePostgres "github.com/AMOUAN/projet-electro/internal/role/postgres"
	"github.com/AMOUAN/projet-electro/internal/setting"
	settingPostgres "github.com/AMOUAN/projet-electro/internal/setting/postgres"
	"github.com/AMOUAN/projet-electro/internal/transport/rest"
	"github.com/AMOUAN/projet-electro/internal/transport/swagger"
	"github.com/AMOUAN/projet-electro/internal/user"
	userPostgres "github.com/AMOUAN/projet-electro/internal/user/postgres"
	"github.com/AMOUAN/projet-electro/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	// Fail fast on a broken API document instead of a broken swagger UI.
	if _, err := swagger.LoadSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the sqlx-managed pool instead of opening its own.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to attach orm: %w", err)
	}

	router := chi.NewRouter()
	handlers := buildHandlers(config, gormDB, lg)
	rest.RegisterAllRoutes(router, db.DB, handlers, lg, config.Observability.Metrics.Enabled)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) rest.Handlers {
	userRepo := userPostgres.NewUserRepository(gormDB)
	roleRepo := rolePostgres.NewRoleRepository(gormDB)
	companyRepo := companyPostgres.NewCompanyRepository(gormDB)
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	contractRepo := contractPostgres.NewContractRepository(gormDB)
	applicationRepo := applicationPostgres.NewApplicationRepository(gormDB)
	networkRepo := networkPostgres.NewNetworkRepository(gormDB)
	apikeyRepo := apikeyPostgres.NewAPIKeyRepository(gormDB)
	settingRepo := settingPostgres.NewSettingRepository(gormDB)

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTTL())

	companySvc := company.NewService(companyRepo, lg)
	notificationSvc := notification.NewService(notificationRepo, userRepo, lg)
	authSvc := auth.NewService(userRepo, tokenGen, config.Security.BCryptCost, config.Security.ResetTTL(), lg)
	userSvc := user.NewService(userRepo, roleRepo, companySvc, notificationSvc, config.Security.BCryptCost, config.Security.ActivationTTL(), lg)
	roleSvc := role.NewService(roleRepo, lg)
	contractSvc := contract.NewService(contractRepo, companyRepo, lg)
	applicationSvc := application.NewService(applicationRepo, lg)
	networkSvc := network.NewService(networkRepo, lg)
	apikeySvc := apikey.NewService(apikeyRepo, lg)
	settingSvc := setting.NewService(settingRepo, lg)

	return rest.Handlers{
		Auth:         auth.NewHandler(authSvc),
		User:         user.NewHandler(userSvc),
		Company:      company.NewHandler(companySvc),
		Contract:     contract.NewHandler(contractSvc),
		Application:  application.NewHandler(applicationSvc),
		Network:      network.NewHandler(networkSvc),
		Notification: notification.NewHandler(notificationSvc),
		Role:         role.NewHandler(roleSvc),
		APIKey:       apikey.NewHandler(apikeySvc),
		Setting:      setting.NewHandler(settingSvc),
	}
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
