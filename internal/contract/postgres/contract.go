package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/contract"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) contract.RepositoryAPI {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetAll() ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Preload("Company").Order("end_date ASC").Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) GetByID(id string) (*contract.Contract, error) {
	var c contract.Contract
	err := r.db.Preload("Company").Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) ListByCompany(companyID string) ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	err := r.db.Preload("Company").Where("company_id = ?", companyID).Order("end_date ASC").Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) Create(c *contract.Contract) error {
	return r.db.Create(c).Error
}

func (r *ContractRepository) Update(c *contract.Contract) error {
	return r.db.Save(c).Error
}

func (r *ContractRepository) Delete(id string) error {
	return r.db.Delete(&contract.Contract{}, "id = ?", id).Error
}
