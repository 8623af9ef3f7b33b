package setting

import (
	"log/slog"
	"strings"

	"github.com/AMOUAN/projet-electro/internal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() (map[string]string, error) {
	settings, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list settings", err)
	}

	values := make(map[string]string, len(settings))
	for _, st := range settings {
		values[st.Key] = st.Value
	}
	return values, nil
}

func (s *Service) Get(key string) (*Setting, error) {
	st, err := s.repo.Get(key)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up setting", err)
	}
	if st == nil {
		return nil, internal.NewNotFoundError("Setting not found", internal.ErrCodeSettingNotFound)
	}
	return st, nil
}

func (s *Service) Upsert(key, value string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, internal.NewValidationError("key is required", internal.ErrCodeValidationFailed)
	}

	st, err := s.repo.Upsert(key, value)
	if err != nil {
		return nil, internal.NewInternalError("failed to store setting", err)
	}

	s.logger.Info("setting updated", "key", key)
	return st, nil
}

// UpsertMany applies each pair independently; the first failure aborts.
func (s *Service) UpsertMany(values map[string]string) (map[string]string, error) {
	for key, value := range values {
		if _, err := s.Upsert(key, value); err != nil {
			return nil, err
		}
	}
	return s.GetAll()
}
