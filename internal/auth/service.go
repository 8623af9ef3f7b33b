package auth

import (
	"log/slog"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// Service implements credential verification and password recovery on top
// of the user store.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	resetTokenTTL  time.Duration
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, resetTokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		resetTokenTTL:  resetTokenTTL,
		logger:         logger,
	}
}

// Login verifies credentials against the email first, then the username.
// Any failure surfaces as the same UNAUTHORIZED error except for a
// non-active account, which gets its own code so the UI can point the
// caller at activation.
func (s *Service) Login(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		u, err = s.userRepo.GetByUsername(dto.Email)
		if err != nil {
			return nil, internal.NewInternalError("failed to look up user", err)
		}
	}
	if u == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !u.IsActive() {
		return nil, internal.ErrAccountNotActive
	}

	if err := VerifyPassword(u.Password, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(u.ID, now); err != nil {
		return nil, internal.NewInternalError("failed to update last login", err)
	}
	u.LastLogin = &now

	token, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Username, u.Role.Name)
	if err != nil {
		return nil, internal.NewInternalError("failed to sign access token", err)
	}

	return &LoginResult{AccessToken: token, User: u}, nil
}

// ForgotPassword issues a fresh reset token with a short absolute expiry.
// Issuing again overwrites the previous token, invalidating it.
func (s *Service) ForgotPassword(dto ForgotPasswordDTO) (*MessageResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	if !u.IsActive() {
		return nil, internal.ErrResetNotActive
	}

	token, err := GenerateRandomToken()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate reset token", err)
	}

	expires := time.Now().Add(s.resetTokenTTL)
	if err := s.userRepo.SetResetToken(u.ID, token, expires); err != nil {
		return nil, internal.NewInternalError("failed to store reset token", err)
	}

	// Email dispatch is the mailer's job; until it is wired up the reset
	// link only appears in the logs.
	s.logger.Info("password reset token issued", "user_id", u.ID, "expires_at", expires)

	return &MessageResult{Message: "If the account exists, a reset link has been sent"}, nil
}

// ValidateResetToken reports validity without consuming the token.
func (s *Service) ValidateResetToken(token string) (*TokenValidity, error) {
	u, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up reset token", err)
	}
	if u == nil {
		return nil, internal.ErrResetTokenNotFound
	}
	if u.ResetTokenExpired(time.Now()) {
		return nil, internal.ErrResetTokenExpired
	}
	return &TokenValidity{Valid: true}, nil
}

// ResetPassword stores the new password hash and clears the token and its
// expiry in the same update, so the token is consumed exactly once.
func (s *Service) ResetPassword(dto ResetPasswordDTO) (*MessageResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.userRepo.GetByResetToken(dto.Token)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up reset token", err)
	}
	if u == nil {
		return nil, internal.ErrResetTokenNotFound
	}
	if u.ResetTokenExpired(time.Now()) {
		return nil, internal.ErrResetTokenExpired
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	if err := s.userRepo.ConsumeResetToken(u.ID, hash); err != nil {
		return nil, internal.NewInternalError("failed to reset password", err)
	}

	return &MessageResult{Message: "Password has been reset"}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetActiveUser resolves the token subject to a live account. Status is
// re-checked here on every request, not trusted from token issuance.
func (s *Service) GetActiveUser(userID string) (*userDatamodel.User, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	if !u.IsActive() {
		return nil, internal.ErrAccountNotActive
	}
	return u, nil
}
