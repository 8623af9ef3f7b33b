package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/application"
	"github.com/AMOUAN/projet-electro/internal/network"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) application.RepositoryAPI {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) GetAll(companyID string) ([]*application.Application, error) {
	var apps []*application.Application
	q := r.db.Preload("Company").Order("name ASC")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) GetByID(id string) (*application.Application, error) {
	var a application.Application
	err := r.db.Preload("Company").Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) DeviceCount(id string) (int64, error) {
	var count int64
	err := r.db.Model(&network.Device{}).Where("application_id = ?", id).Count(&count).Error
	return count, err
}

func (r *ApplicationRepository) Devices(id string) ([]*network.Device, error) {
	var devices []*network.Device
	err := r.db.Where("application_id = ?", id).Order("name ASC").Find(&devices).Error
	return devices, err
}

func (r *ApplicationRepository) FrameCount(id string) (int64, error) {
	var count int64
	err := r.db.Model(&network.Frame{}).
		Joins("JOIN devices ON devices.id = frames.device_id").
		Where("devices.application_id = ?", id).
		Count(&count).Error
	return count, err
}
