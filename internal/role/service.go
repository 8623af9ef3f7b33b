package role

import (
	"log/slog"

	"github.com/AMOUAN/projet-electro/internal"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
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

func (s *Service) List() ([]*RoleView, error) {
	roles, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	views := make([]*RoleView, 0, len(roles))
	for _, r := range roles {
		view, err := s.toView(r)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Get(id string) (*RoleView, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up role", err)
	}
	if r == nil {
		return nil, internal.NewNotFoundError("Role not found", internal.ErrCodeRoleNotFound)
	}
	return s.toView(r)
}

func (s *Service) toView(r *roleDatamodel.Role) (*RoleView, error) {
	count, err := s.repo.UserCount(r.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count role members", err)
	}
	return &RoleView{
		Role:        r,
		UserCount:   count,
		Permissions: roleDatamodel.PermissionLabels(r.Name),
	}, nil
}
