package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the base roles and a first administrator",
	Long:  `Seed the roles every deployment needs plus an initial SUPER_ADMIN account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to attach orm: %v", err)
		}

		roles := []roleDatamodel.Role{
			{Name: roleDatamodel.SuperAdmin, Description: "Platform operator with every permission"},
			{Name: roleDatamodel.Admin, Description: "Tenant administrator"},
			{Name: roleDatamodel.User, Description: "Standard account"},
		}

		for i := range roles {
			if err := db.Where("name = ?", roles[i].Name).FirstOrCreate(&roles[i]).Error; err != nil {
				log.Fatalf("failed to seed role %s: %v", roles[i].Name, err)
			}
			fmt.Println("Seeded role:", roles[i].Name)
		}

		var superAdminRole roleDatamodel.Role
		if err := db.Where("name = ?", roleDatamodel.SuperAdmin).First(&superAdminRole).Error; err != nil {
			log.Fatalf("super admin role missing after seed: %v", err)
		}

		adminEmail := "admin@projet-electro.local"
		var count int64
		if err := db.Model(&userDatamodel.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
			log.Fatalf("failed to check admin user: %v", err)
		}
		if count > 0 {
			fmt.Println("Admin user already exists:", adminEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		admin := &userDatamodel.User{
			Username:  "admin",
			Email:     adminEmail,
			Password:  string(hash),
			FirstName: "Super",
			LastName:  "Admin",
			Status:    userDatamodel.StatusActive,
			RoleID:    superAdminRole.ID,
		}
		if err := db.Create(admin).Error; err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}

		fmt.Println("Seeded admin user:", adminEmail, "(password: changeme, rotate it)")
	},
}
