package role

import (
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
)

type RepositoryAPI interface {
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id string) (*roleDatamodel.Role, error)
	GetByName(name string) (*roleDatamodel.Role, error)
	UserCount(roleID string) (int64, error)
}

// RoleView decorates a role with its member count and the static
// permission labels shown in the admin UI.
type RoleView struct {
	*roleDatamodel.Role
	UserCount   int64    `json:"user_count"`
	Permissions []string `json:"permissions"`
}

type ServiceAPI interface {
	List() ([]*RoleView, error)
	Get(id string) (*RoleView, error)
}
