package company

import (
	"strings"

	"github.com/AMOUAN/projet-electro/internal"
)

type CreateCompanyDTO struct {
	Name string `json:"name"`
}

func (d CreateCompanyDTO) Validate() error {
	if len(strings.TrimSpace(d.Name)) < 2 {
		return internal.NewValidationError("name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateCompanyDTO struct {
	Name string `json:"name"`
}

func (d UpdateCompanyDTO) Validate() error {
	if len(strings.TrimSpace(d.Name)) < 2 {
		return internal.NewValidationError("name must be at least 2 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}
