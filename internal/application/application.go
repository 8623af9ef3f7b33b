package application

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
	"github.com/AMOUAN/projet-electro/internal/network"
)

// Application groups devices for one tenant. Rows are provisioned on the
// network server side; this service reads them.
type Application struct {
	ID          string                    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID   string                    `gorm:"size:36;not null;index" json:"company_id"`
	Company     *companyDatamodel.Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Name        string                    `gorm:"size:255;not null" json:"name"`
	Description string                    `gorm:"type:text" json:"description,omitempty"`
	AppEUI      string                    `gorm:"size:23" json:"app_eui,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ApplicationView is the list row with its device count.
type ApplicationView struct {
	*Application
	DeviceCount int64 `json:"device_count"`
}

// ApplicationDetail adds the devices themselves and the total frames they
// produced.
type ApplicationDetail struct {
	*Application
	Devices    []*network.Device `json:"devices"`
	FrameCount int64             `json:"frame_count"`
}

type RepositoryAPI interface {
	GetAll(companyID string) ([]*Application, error)
	GetByID(id string) (*Application, error)
	DeviceCount(id string) (int64, error)
	Devices(id string) ([]*network.Device, error)
	FrameCount(id string) (int64, error)
}

type ServiceAPI interface {
	List(companyID string) ([]*ApplicationView, error)
	Get(id string) (*ApplicationDetail, error)
}
