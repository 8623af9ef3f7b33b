package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AMOUAN/projet-electro/internal/company"
	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetAll() ([]*companyDatamodel.Company, error) {
	var companies []*companyDatamodel.Company
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) GetByID(id string) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	err := r.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) GetByName(name string) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	err := r.db.Where("name = ?", name).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(c *companyDatamodel.Company) error {
	return r.db.Create(c).Error
}

func (r *CompanyRepository) Update(c *companyDatamodel.Company) error {
	return r.db.Save(c).Error
}

func (r *CompanyRepository) Delete(id string) error {
	return r.db.Delete(&companyDatamodel.Company{}, "id = ?", id).Error
}

func (r *CompanyRepository) Counts(id string) (*company.Counts, error) {
	var counts company.Counts
	if err := r.db.Table("users").Where("company_id = ?", id).Count(&counts.Users).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("applications").Where("company_id = ?", id).Count(&counts.Applications).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("contracts").Where("company_id = ?", id).Count(&counts.Contracts).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
