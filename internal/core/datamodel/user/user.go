package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
	"github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusRejected Status = "REJECTED"
)

// User is the persisted account record. Password and the single-use tokens
// never serialize to JSON.
type User struct {
	ID               string `gorm:"primaryKey;size:36" json:"id"`
	Username         string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email            string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password         string `gorm:"size:255;not null" json:"-"`
	FirstName        string `gorm:"size:255" json:"first_name"`
	LastName         string `gorm:"size:255" json:"last_name"`
	Phone            string `gorm:"size:64" json:"phone,omitempty"`
	UsageDescription string `gorm:"type:text" json:"usage_description,omitempty"`
	Status           Status `gorm:"size:16;not null;default:PENDING" json:"status"`

	RoleID    string           `gorm:"size:36;not null" json:"role_id"`
	Role      role.Role        `gorm:"foreignKey:RoleID" json:"role"`
	CompanyID *string          `gorm:"size:36" json:"company_id,omitempty"`
	Company   *company.Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	ActivationToken           *string    `gorm:"size:128;index" json:"-"`
	ActivationTokenExpires    *time.Time `json:"-"`
	ResetPasswordToken        *string    `gorm:"size:128;index" json:"-"`
	ResetPasswordTokenExpires *time.Time `json:"-"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Status == "" {
		u.Status = StatusPending
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ActivationExpired reports whether the stored activation token has passed
// its expiry at time now. A missing expiry counts as expired.
func (u *User) ActivationExpired(now time.Time) bool {
	return u.ActivationTokenExpires == nil || u.ActivationTokenExpires.Before(now)
}

func (u *User) ResetTokenExpired(now time.Time) bool {
	return u.ResetPasswordTokenExpires == nil || u.ResetPasswordTokenExpires.Before(now)
}
