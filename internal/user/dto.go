package user

import (
	"fmt"
	"strings"

	"github.com/AMOUAN/projet-electro/internal"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

// RequestAccessDTO is the self-service signup payload. The caller chooses
// the password at signup; username is set to the email.
type RequestAccessDTO struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Company          string `json:"company"`
	Phone            string `json:"phone,omitempty"`
	UsageDescription string `json:"usage_description"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
}

func (d RequestAccessDTO) Validate() error {
	if len(strings.TrimSpace(d.FirstName)) < 2 {
		return internal.NewValidationError("first_name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	if len(strings.TrimSpace(d.LastName)) < 2 {
		return internal.NewValidationError("last_name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(strings.TrimSpace(d.Company)) < 2 {
		return internal.NewValidationError("company must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	if len(d.UsageDescription) < 10 {
		return internal.NewValidationError("usage_description must be at least 10 characters", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	if d.Password != d.ConfirmPassword {
		return internal.ErrPasswordMismatch
	}
	return nil
}

type ActivateAccountDTO struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (d ActivateAccountDTO) Validate() error {
	if d.Token == "" {
		return internal.NewValidationError("token is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	if d.Password != d.ConfirmPassword {
		return internal.ErrPasswordMismatch
	}
	return nil
}

// CreateUserDTO is the administrative creation payload. Role defaults to
// USER and status to PENDING when unspecified.
type CreateUserDTO struct {
	Username         string                `json:"username"`
	Email            string                `json:"email"`
	Password         string                `json:"password"`
	FirstName        string                `json:"first_name,omitempty"`
	LastName         string                `json:"last_name,omitempty"`
	Company          string                `json:"company,omitempty"`
	RoleID           string                `json:"role_id,omitempty"`
	Status           userDatamodel.Status  `json:"status,omitempty"`
	Phone            string                `json:"phone,omitempty"`
	UsageDescription string                `json:"usage_description,omitempty"`
}

func (d CreateUserDTO) Validate() error {
	if len(d.Username) < 3 {
		return internal.NewValidationError("username must be at least 3 characters", internal.ErrCodeValidationFailed)
	}
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	if d.Status != "" {
		switch d.Status {
		case userDatamodel.StatusPending, userDatamodel.StatusActive, userDatamodel.StatusInactive, userDatamodel.StatusRejected:
		default:
			return internal.NewValidationError(fmt.Sprintf("invalid status %q", d.Status), internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

type UpdateUserDTO struct {
	Username         *string               `json:"username,omitempty"`
	Email            *string               `json:"email,omitempty"`
	Password         *string               `json:"password,omitempty"`
	FirstName        *string               `json:"first_name,omitempty"`
	LastName         *string               `json:"last_name,omitempty"`
	RoleID           *string               `json:"role_id,omitempty"`
	Status           *userDatamodel.Status `json:"status,omitempty"`
	Phone            *string               `json:"phone,omitempty"`
	UsageDescription *string               `json:"usage_description,omitempty"`
}

func (d UpdateUserDTO) Validate() error {
	if d.Username != nil && len(*d.Username) < 3 {
		return internal.NewValidationError("username must be at least 3 characters", internal.ErrCodeValidationFailed)
	}
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password != nil && len(*d.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodePasswordTooShort)
	}
	if d.Status != nil {
		switch *d.Status {
		case userDatamodel.StatusPending, userDatamodel.StatusActive, userDatamodel.StatusInactive, userDatamodel.StatusRejected:
		default:
			return internal.NewValidationError(fmt.Sprintf("invalid status %q", *d.Status), internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
