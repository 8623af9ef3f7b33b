package contract

import (
	"strings"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
)

type CreateContractDTO struct {
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	DeviceLimit int       `json:"device_limit"`
}

func (d CreateContractDTO) Validate() error {
	if d.CompanyID == "" {
		return internal.NewValidationError("company_id is required", internal.ErrCodeValidationFailed)
	}
	if len(strings.TrimSpace(d.Name)) < 2 {
		return internal.NewValidationError("name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return internal.NewValidationError("start_date and end_date are required", internal.ErrCodeValidationFailed)
	}
	if !d.EndDate.After(d.StartDate) {
		return internal.NewValidationError("end_date must be after start_date", internal.ErrCodeValidationFailed)
	}
	if d.DeviceLimit < 0 {
		return internal.NewValidationError("device_limit cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateContractDTO struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	DeviceLimit *int       `json:"device_limit,omitempty"`
}

func (d UpdateContractDTO) Validate() error {
	if d.Name != nil && len(strings.TrimSpace(*d.Name)) < 2 {
		return internal.NewValidationError("name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	if d.DeviceLimit != nil && *d.DeviceLimit < 0 {
		return internal.NewValidationError("device_limit cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}
