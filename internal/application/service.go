package application

import (
	"log/slog"

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

func (s *Service) List(companyID string) ([]*ApplicationView, error) {
	apps, err := s.repo.GetAll(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list applications", err)
	}

	views := make([]*ApplicationView, 0, len(apps))
	for _, a := range apps {
		count, err := s.repo.DeviceCount(a.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to count devices", err)
		}
		views = append(views, &ApplicationView{Application: a, DeviceCount: count})
	}
	return views, nil
}

func (s *Service) Get(id string) (*ApplicationDetail, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up application", err)
	}
	if a == nil {
		return nil, internal.NewNotFoundError("Application not found", internal.ErrCodeApplicationNotFound)
	}

	devices, err := s.repo.Devices(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to list devices", err)
	}
	frames, err := s.repo.FrameCount(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to count frames", err)
	}

	return &ApplicationDetail{Application: a, Devices: devices, FrameCount: frames}, nil
}
