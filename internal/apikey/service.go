package apikey

import (
	"log/slog"
	"strings"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
)

type CreateAPIKeyDTO struct {
	Name   string  `json:"name"`
	UserID *string `json:"user_id,omitempty"`
}

func (d CreateAPIKeyDTO) Validate() error {
	if len(strings.TrimSpace(d.Name)) < 2 {
		return internal.NewValidationError("name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type Service struct {
	repo   RepositoryAPI
	clock  func() time.Time
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  time.Now,
		logger: logger,
	}
}

// WithClock pins the service clock, for last-used stamping tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Create issues a key and returns the plaintext exactly once; only its
// digest is persisted.
func (s *Service) Create(dto CreateAPIKeyDTO) (*CreatedKey, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, internal.NewInternalError("failed to generate api key", err)
	}

	k := &APIKey{
		Name:    strings.TrimSpace(dto.Name),
		UserID:  dto.UserID,
		KeyHint: Hint(key),
		KeyHash: HashKey(key),
	}
	if err := s.repo.Create(k); err != nil {
		return nil, internal.NewInternalError("failed to store api key", err)
	}

	s.logger.Info("api key created", "key_id", k.ID, "name", k.Name)
	return &CreatedKey{APIKey: k, Key: key}, nil
}

func (s *Service) List(userID string) ([]*APIKey, error) {
	keys, err := s.repo.List(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list api keys", err)
	}
	return keys, nil
}

func (s *Service) Get(id string) (*APIKey, error) {
	k, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up api key", err)
	}
	if k == nil {
		return nil, internal.NewNotFoundError("API key not found", internal.ErrCodeAPIKeyNotFound)
	}
	return k, nil
}

// Authenticate resolves a presented key and records its use.
func (s *Service) Authenticate(key string) (*APIKey, error) {
	k, err := s.repo.GetByHash(HashKey(key))
	if err != nil {
		return nil, internal.NewInternalError("failed to look up api key", err)
	}
	if k == nil {
		return nil, internal.NewUnauthorizedError("Invalid API key", internal.ErrCodeInvalidToken)
	}

	now := s.clock()
	if err := s.repo.TouchLastUsed(k.ID, now); err != nil {
		s.logger.Warn("failed to record api key use", "key_id", k.ID, "error", err)
	}
	k.LastUsedAt = &now
	return k, nil
}

func (s *Service) Delete(id string) error {
	k, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("failed to look up api key", err)
	}
	if k == nil {
		return internal.NewNotFoundError("API key not found", internal.ErrCodeAPIKeyNotFound)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete api key", err)
	}
	s.logger.Info("api key deleted", "key_id", id)
	return nil
}
