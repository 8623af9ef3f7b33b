package user

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
	"github.com/AMOUAN/projet-electro/internal/auth"
	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// Service owns the account lifecycle: self-service signup into PENDING,
// token-based activation into ACTIVE, and administrative CRUD.
type Service struct {
	repo          Repository
	roles         RoleRepository
	companies     CompanyProvider
	notifier      Notifier
	bcryptCost    int
	activationTTL time.Duration
	clock         Clock
	logger        *slog.Logger
}

func NewService(repo Repository, roles RoleRepository, companies CompanyProvider, notifier Notifier, bcryptCost int, activationTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		roles:         roles,
		companies:     companies,
		notifier:      notifier,
		bcryptCost:    bcryptCost,
		activationTTL: activationTTL,
		clock:         time.Now,
		logger:        logger,
	}
}

// WithClock pins the service clock, for expiry tests.
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

// RequestAccess registers a PENDING account. The username is the email,
// the company is resolved by name (created on first use) and an
// activation token with an absolute expiry is stored on the row. Every
// current SUPER_ADMIN gets an ACCOUNT_PENDING notification; a failure
// there is logged, not surfaced, since the account is already persisted.
func (s *Service) RequestAccess(dto RequestAccessDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	defaultRole, err := s.roles.GetByName(roleDatamodel.User)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up default role", err)
	}
	if defaultRole == nil {
		return nil, internal.ErrDefaultRoleMissing
	}

	comp, err := s.companies.GetOrCreate(dto.Company)
	if err != nil {
		return nil, internal.NewInternalError("failed to resolve company", err)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	token, err := auth.GenerateRandomToken()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate activation token", err)
	}
	expires := s.clock().Add(s.activationTTL)

	u := &userDatamodel.User{
		Username:               dto.Email,
		Email:                  dto.Email,
		Password:               hash,
		FirstName:              dto.FirstName,
		LastName:               dto.LastName,
		Phone:                  dto.Phone,
		UsageDescription:       dto.UsageDescription,
		Status:                 userDatamodel.StatusPending,
		RoleID:                 defaultRole.ID,
		Role:                   *defaultRole,
		CompanyID:              &comp.ID,
		Company:                comp,
		ActivationToken:        &token,
		ActivationTokenExpires: &expires,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	title := "New access request"
	message := fmt.Sprintf("%s %s (%s) from %s requested access", u.FirstName, u.LastName, u.Email, comp.Name)
	if err := s.notifier.NotifySuperAdmins(notificationDatamodel.TypeAccountPending, title, message); err != nil {
		s.logger.Error("failed to notify admins of access request", "user_id", u.ID, "error", err)
	}

	s.logger.Info("access requested", "user_id", u.ID, "email", u.Email, "company", comp.Name)
	return u, nil
}

// ActivateAccount consumes an activation token: the new password hash is
// stored and the token plus its expiry cleared in a single update, so a
// token activates at most once.
func (s *Service) ActivateAccount(dto ActivateAccountDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByActivationToken(dto.Token)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up activation token", err)
	}
	if u == nil {
		return nil, internal.ErrActivationTokenNotFound
	}
	if u.ActivationExpired(s.clock()) {
		return nil, internal.ErrActivationExpired
	}
	if u.IsActive() {
		return nil, internal.ErrAlreadyActivated
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.Activate(u.ID, hash); err != nil {
		return nil, internal.NewInternalError("failed to activate account", err)
	}

	u.Status = userDatamodel.StatusActive
	u.Password = hash
	u.ActivationToken = nil
	u.ActivationTokenExpires = nil

	s.logger.Info("account activated", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// Create is the administrative path: the caller picks username, role and
// status directly, no activation token involved.
func (s *Service) Create(dto CreateUserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		return nil, internal.ErrUserIdentityTaken
	}

	var role *roleDatamodel.Role
	if dto.RoleID != "" {
		role, err = s.roles.GetByID(dto.RoleID)
	} else {
		role, err = s.roles.GetByName(roleDatamodel.User)
	}
	if err != nil {
		return nil, internal.NewInternalError("failed to look up role", err)
	}
	if role == nil {
		return nil, internal.NewNotFoundError("Role not found", internal.ErrCodeRoleNotFound)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &userDatamodel.User{
		Username:         dto.Username,
		Email:            dto.Email,
		Password:         hash,
		FirstName:        dto.FirstName,
		LastName:         dto.LastName,
		Phone:            dto.Phone,
		UsageDescription: dto.UsageDescription,
		Status:           dto.Status,
		RoleID:           role.ID,
		Role:             *role,
	}

	if dto.Company != "" {
		comp, err := s.companies.GetOrCreate(dto.Company)
		if err != nil {
			return nil, internal.NewInternalError("failed to resolve company", err)
		}
		u.CompanyID = &comp.ID
		u.Company = comp
	}

	if err := s.repo.Create(u); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *Service) List() ([]*userDatamodel.User, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) Get(id string) (*userDatamodel.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// Update applies the non-nil fields of the patch. Username and email
// changes are checked against every other account first.
func (s *Service) Update(id string, dto UpdateUserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}

	username := u.Username
	email := u.Email
	if dto.Username != nil {
		username = *dto.Username
	}
	if dto.Email != nil {
		email = *dto.Email
	}
	if username != u.Username || email != u.Email {
		taken, err := s.repo.ExistsOtherWithUsernameOrEmail(u.ID, username, email)
		if err != nil {
			return nil, internal.NewInternalError("failed to check user identity", err)
		}
		if taken {
			return nil, internal.ErrUserIdentityTaken
		}
	}
	u.Username = username
	u.Email = email

	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		u.Password = hash
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		u.Phone = *dto.Phone
	}
	if dto.UsageDescription != nil {
		u.UsageDescription = *dto.UsageDescription
	}
	if dto.Status != nil {
		u.Status = *dto.Status
	}
	if dto.RoleID != nil {
		role, err := s.roles.GetByID(*dto.RoleID)
		if err != nil {
			return nil, internal.NewInternalError("failed to look up role", err)
		}
		if role == nil {
			return nil, internal.NewNotFoundError("Role not found", internal.ErrCodeRoleNotFound)
		}
		u.RoleID = role.ID
		u.Role = *role
	}

	if err := s.repo.Update(u); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) Delete(id string) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return internal.ErrUserNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
