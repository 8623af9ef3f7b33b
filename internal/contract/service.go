package contract

import (
	"log/slog"
	"time"

	"github.com/AMOUAN/projet-electro/internal"
)

type Service struct {
	repo      RepositoryAPI
	companies CompanyChecker
	clock     func() time.Time
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, companies CompanyChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		clock:     time.Now,
		logger:    logger,
	}
}

// WithClock pins the service clock, for status derivation tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// List returns contracts ordered by end date with their derived status
// and remaining days. An empty companyID means all tenants.
func (s *Service) List(companyID string) ([]*ContractView, error) {
	var (
		contracts []*Contract
		err       error
	)
	if companyID != "" {
		contracts, err = s.repo.ListByCompany(companyID)
	} else {
		contracts, err = s.repo.GetAll()
	}
	if err != nil {
		return nil, internal.NewInternalError("failed to list contracts", err)
	}

	now := s.clock()
	views := make([]*ContractView, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, &ContractView{
			Contract: c,
			DaysLeft: c.DaysLeft(now),
			Status:   c.StatusAt(now),
		})
	}
	return views, nil
}

func (s *Service) Get(id string) (*ContractView, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up contract", err)
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Contract not found", internal.ErrCodeContractNotFound)
	}
	now := s.clock()
	return &ContractView{Contract: c, DaysLeft: c.DaysLeft(now), Status: c.StatusAt(now)}, nil
}

func (s *Service) Create(dto CreateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	comp, err := s.companies.GetByID(dto.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up company", err)
	}
	if comp == nil {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}

	c := &Contract{
		CompanyID:   dto.CompanyID,
		Name:        dto.Name,
		Description: dto.Description,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		DeviceLimit: dto.DeviceLimit,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, internal.NewInternalError("failed to create contract", err)
	}

	s.logger.Info("contract created", "contract_id", c.ID, "company_id", c.CompanyID)
	return c, nil
}

func (s *Service) Update(id string, dto UpdateContractDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up contract", err)
	}
	if c == nil {
		return nil, internal.NewNotFoundError("Contract not found", internal.ErrCodeContractNotFound)
	}

	if dto.Name != nil {
		c.Name = *dto.Name
	}
	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.StartDate != nil {
		c.StartDate = *dto.StartDate
	}
	if dto.EndDate != nil {
		c.EndDate = *dto.EndDate
	}
	if !c.EndDate.After(c.StartDate) {
		return nil, internal.NewValidationError("end_date must be after start_date", internal.ErrCodeValidationFailed)
	}
	if dto.DeviceLimit != nil {
		c.DeviceLimit = *dto.DeviceLimit
	}

	if err := s.repo.Update(c); err != nil {
		return nil, internal.NewInternalError("failed to update contract", err)
	}
	return c, nil
}

func (s *Service) Delete(id string) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("failed to look up contract", err)
	}
	if c == nil {
		return internal.NewNotFoundError("Contract not found", internal.ErrCodeContractNotFound)
	}
	if err := s.repo.Delete(id); err != nil {
		return internal.NewInternalError("failed to delete contract", err)
	}
	s.logger.Info("contract deleted", "contract_id", id)
	return nil
}
