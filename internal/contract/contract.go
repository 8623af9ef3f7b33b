package contract

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

// Status is derived from the end date at read time, never stored.
type Status string

const (
	StatusActive   Status = "active"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"

	// Contracts ending within this window count as expiring.
	ExpiryWarningDays = 7
)

type Contract struct {
	ID          string                   `gorm:"primaryKey;size:36" json:"id"`
	CompanyID   string                   `gorm:"size:36;not null;index" json:"company_id"`
	Company     *companyDatamodel.Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Name        string                   `gorm:"size:255;not null" json:"name"`
	Description string                   `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time                `gorm:"not null" json:"start_date"`
	EndDate     time.Time                `gorm:"not null;index" json:"end_date"`
	DeviceLimit int                      `gorm:"not null;default:0" json:"device_limit"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// DaysLeft counts whole days until the end date; past contracts go
// negative.
func (c *Contract) DaysLeft(now time.Time) int {
	return int(c.EndDate.Sub(now).Hours() / 24)
}

// StatusAt derives the contract state at time now.
func (c *Contract) StatusAt(now time.Time) Status {
	if c.EndDate.Before(now) {
		return StatusExpired
	}
	if c.EndDate.Before(now.Add(ExpiryWarningDays * 24 * time.Hour)) {
		return StatusExpiring
	}
	return StatusActive
}

// ContractView is a contract plus its derived fields.
type ContractView struct {
	*Contract
	DaysLeft int    `json:"days_left"`
	Status   Status `json:"status"`
}

type RepositoryAPI interface {
	GetAll() ([]*Contract, error)
	GetByID(id string) (*Contract, error)
	ListByCompany(companyID string) ([]*Contract, error)
	Create(c *Contract) error
	Update(c *Contract) error
	Delete(id string) error
}

// CompanyChecker verifies the tenant exists before a contract attaches
// to it.
type CompanyChecker interface {
	GetByID(id string) (*companyDatamodel.Company, error)
}

type ServiceAPI interface {
	List(companyID string) ([]*ContractView, error)
	Get(id string) (*ContractView, error)
	Create(dto CreateContractDTO) (*Contract, error)
	Update(id string, dto UpdateContractDTO) (*Contract, error)
	Delete(id string) error
}
