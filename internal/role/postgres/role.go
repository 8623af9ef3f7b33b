package postgres

import (
	"errors"

	"gorm.io/gorm"

	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// RoleRepository reads the seeded role rows. It also backs the lifecycle
// service's role lookups.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id string) (*roleDatamodel.Role, error) {
	var role roleDatamodel.Role
	err := r.db.Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) GetByName(name string) (*roleDatamodel.Role, error) {
	var role roleDatamodel.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) UserCount(roleID string) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}
