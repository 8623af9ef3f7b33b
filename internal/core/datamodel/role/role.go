package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SuperAdmin = "SUPER_ADMIN"
	Admin      = "ADMIN"
	User       = "USER"
)

type Role struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// PermissionLabels returns the static human-readable permission list shown
// in the admin UI. Enforcement happens at route level, not per label.
func PermissionLabels(name string) []string {
	switch name {
	case SuperAdmin:
		return []string{"All permissions"}
	case Admin:
		return []string{"Company management", "User management", "Network view", "Device management"}
	case User:
		return []string{"Dashboard view", "Device management"}
	default:
		return []string{}
	}
}
