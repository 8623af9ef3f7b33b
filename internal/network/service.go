package network

import (
	"log/slog"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
)

const (
	defaultFrameLimit = 50
	maxFrameLimit     = 500
)

// Service is a read-only view over telemetry ingested by the network
// server. Nothing here mutates gateway, device or frame rows.
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

func (s *Service) HealthStats(companyID string) (*HealthStats, error) {
	stats, err := s.repo.HealthStats(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to compute health stats", err)
	}
	return stats, nil
}

func (s *Service) GatewayHealthList() ([]*GatewayHealth, error) {
	list, err := s.repo.GatewayHealthList()
	if err != nil {
		return nil, internal.NewInternalError("failed to list gateway health", err)
	}
	return list, nil
}

func (s *Service) Gateways() ([]*Gateway, error) {
	gateways, err := s.repo.Gateways()
	if err != nil {
		return nil, internal.NewInternalError("failed to list gateways", err)
	}
	return gateways, nil
}

func (s *Service) GatewayStats(id string) (*GatewayStats, error) {
	g, err := s.repo.GatewayByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up gateway", err)
	}
	if g == nil {
		return nil, internal.NewNotFoundError("Gateway not found", internal.ErrCodeGatewayNotFound)
	}
	stats, err := s.repo.GatewayStats(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to compute gateway stats", err)
	}
	return stats, nil
}

func (s *Service) Frames(companyID string, limit int) ([]*FrameView, error) {
	if limit <= 0 {
		limit = defaultFrameLimit
	}
	if limit > maxFrameLimit {
		limit = maxFrameLimit
	}
	frames, err := s.repo.Frames(companyID, limit)
	if err != nil {
		return nil, internal.NewInternalError("failed to list frames", err)
	}
	return frames, nil
}

// DashboardStats counts frames since local midnight.
func (s *Service) DashboardStats(companyID string) (*DashboardStats, error) {
	now := s.clock()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := s.repo.DashboardStats(companyID, midnight)
	if err != nil {
		return nil, internal.NewInternalError("failed to compute dashboard stats", err)
	}
	return stats, nil
}

func (s *Service) RecentActivity(companyID string, limit int) ([]*Activity, error) {
	if limit <= 0 {
		limit = defaultFrameLimit
	}
	if limit > maxFrameLimit {
		limit = maxFrameLimit
	}
	activity, err := s.repo.RecentActivity(companyID, limit)
	if err != nil {
		return nil, internal.NewInternalError("failed to list recent activity", err)
	}
	return activity, nil
}
