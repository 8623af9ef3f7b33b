package company

import (
	"log/slog"
	"strings"

	"github.com/AMOUAN/projet-electro/internal"
	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List() ([]*CompanyView, error) {
	companies, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list companies", err)
	}

	views := make([]*CompanyView, 0, len(companies))
	for _, c := range companies {
		counts, err := s.repo.Counts(c.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to count company relations", err)
		}
		views = append(views, &CompanyView{Company: c, Counts: *counts})
	}
	return views, nil
}

func (s *Service) Get(id string) (*CompanyView, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up company", err)
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	counts, err := s.repo.Counts(c.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count company relations", err)
	}
	return &CompanyView{Company: c, Counts: *counts}, nil
}

func (s *Service) Create(dto CreateCompanyDTO) (*companyDatamodel.Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	existing, err := s.repo.GetByName(name)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up company", err)
	}
	if existing != nil {
		return nil, internal.ErrCompanyNameTaken
	}

	c := &companyDatamodel.Company{Name: name}
	if err := s.repo.Create(c); err != nil {
		return nil, internal.NewInternalError("failed to create company", err)
	}

	s.logger.Info("company created", "company_id", c.ID, "name", c.Name)
	return c, nil
}

func (s *Service) Update(id string, dto UpdateCompanyDTO) (*companyDatamodel.Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up company", err)
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}

	name := strings.TrimSpace(dto.Name)
	if name != c.Name {
		other, err := s.repo.GetByName(name)
		if err != nil {
			return nil, internal.NewInternalError("failed to look up company", err)
		}
		if other != nil {
			return nil, internal.ErrCompanyNameTaken
		}
	}

	c.Name = name
	if err := s.repo.Update(c); err != nil {
		return nil, internal.NewInternalError("failed to update company", err)
	}
	return c, nil
}

func (s *Service) Delete(id string) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("failed to look up company", err)
	}
	if c == nil {
		return internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete company", err)
	}
	s.logger.Info("company deleted", "company_id", id)
	return nil
}

// GetOrCreate resolves a company by its unique name, creating it on first
// use. A create that loses the race to a concurrent signup hits the unique
// constraint and falls back to re-reading the winner's row.
func (s *Service) GetOrCreate(name string) (*companyDatamodel.Company, error) {
	name = strings.TrimSpace(name)

	c, err := s.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c = &companyDatamodel.Company{Name: name}
	if err := s.repo.Create(c); err != nil {
		existing, readErr := s.repo.GetByName(name)
		if readErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	s.logger.Info("company created on signup", "company_id", c.ID, "name", c.Name)
	return c, nil
}
