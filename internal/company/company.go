package company

import (
	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

// RepositoryAPI is the tenant store. Lookups return (nil, nil) on a miss.
type RepositoryAPI interface {
	GetAll() ([]*companyDatamodel.Company, error)
	GetByID(id string) (*companyDatamodel.Company, error)
	GetByName(name string) (*companyDatamodel.Company, error)
	Create(c *companyDatamodel.Company) error
	Update(c *companyDatamodel.Company) error
	Delete(id string) error
	Counts(id string) (*Counts, error)
}

// Counts aggregates what hangs off a company, for the admin list view.
type Counts struct {
	Users        int64 `json:"users"`
	Applications int64 `json:"applications"`
	Contracts    int64 `json:"contracts"`
}

// CompanyView is a company plus its aggregate counts.
type CompanyView struct {
	*companyDatamodel.Company
	Counts Counts `json:"counts"`
}

type ServiceAPI interface {
	List() ([]*CompanyView, error)
	Get(id string) (*CompanyView, error)
	Create(dto CreateCompanyDTO) (*companyDatamodel.Company, error)
	Update(id string, dto UpdateCompanyDTO) (*companyDatamodel.Company, error)
	Delete(id string) error
	GetOrCreate(name string) (*companyDatamodel.Company, error)
}
