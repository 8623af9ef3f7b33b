package contract

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

func TestContract(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Contract Module Suite")
}

type mockRepository struct {
	contracts map[string]*Contract
	nextID    int
}

func newMockRepository() *mockRepository {
	return &mockRepository{contracts: map[string]*Contract{}}
}

func (m *mockRepository) GetAll() ([]*Contract, error) {
	var out []*Contract
	for _, c := range m.contracts {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepository) GetByID(id string) (*Contract, error) {
	return m.contracts[id], nil
}

func (m *mockRepository) ListByCompany(companyID string) ([]*Contract, error) {
	var out []*Contract
	for _, c := range m.contracts {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) Create(c *Contract) error {
	if c.ID == "" {
		m.nextID++
		c.ID = fmt.Sprintf("contract-%d", m.nextID)
	}
	m.contracts[c.ID] = c
	return nil
}

func (m *mockRepository) Update(c *Contract) error {
	m.contracts[c.ID] = c
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.contracts, id)
	return nil
}

type mockCompanyChecker struct {
	companies map[string]*companyDatamodel.Company
}

func (m *mockCompanyChecker) GetByID(id string) (*companyDatamodel.Company, error) {
	return m.companies[id], nil
}

var _ = ginkgo.Describe("ContractService", func() {
	var (
		service *Service
		repo    *mockRepository
		now     time.Time
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		checker := &mockCompanyChecker{companies: map[string]*companyDatamodel.Company{
			"company-1": {ID: "company-1", Name: "Acme Sensors"},
		}}
		now = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		service = NewService(repo, checker, testLogger).
			WithClock(func() time.Time { return now })
	})

	addContract := func(id string, end time.Time) {
		repo.contracts[id] = &Contract{
			ID:        id,
			CompanyID: "company-1",
			Name:      id,
			StartDate: now.AddDate(-1, 0, 0),
			EndDate:   end,
		}
	}

	ginkgo.Describe("List", func() {
		ginkgo.It("should derive expired status for contracts past their end date", func() {
			addContract("old", now.AddDate(0, 0, -3))

			views, err := service.List("")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(views).To(gomega.HaveLen(1))
			gomega.Expect(views[0].Status).To(gomega.Equal(StatusExpired))
			gomega.Expect(views[0].DaysLeft).To(gomega.Equal(-3))
		})

		ginkgo.It("should flag contracts ending inside the warning window as expiring", func() {
			addContract("soon", now.AddDate(0, 0, 5))

			views, err := service.List("")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(views[0].Status).To(gomega.Equal(StatusExpiring))
			gomega.Expect(views[0].DaysLeft).To(gomega.Equal(5))
		})

		ginkgo.It("should leave contracts ending beyond the window active", func() {
			addContract("long", now.AddDate(1, 0, 0))

			views, err := service.List("")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(views[0].Status).To(gomega.Equal(StatusActive))
		})

		ginkgo.It("should scope to a company when one is given", func() {
			addContract("mine", now.AddDate(1, 0, 0))
			repo.contracts["theirs"] = &Contract{
				ID:        "theirs",
				CompanyID: "company-2",
				EndDate:   now.AddDate(1, 0, 0),
			}

			views, err := service.List("company-1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(views).To(gomega.HaveLen(1))
			gomega.Expect(views[0].ID).To(gomega.Equal("mine"))
		})
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should refuse a contract for an unknown company", func() {
			_, err := service.Create(CreateContractDTO{
				CompanyID: "missing",
				Name:      "Pilot",
				StartDate: now,
				EndDate:   now.AddDate(1, 0, 0),
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should persist a valid contract", func() {
			c, err := service.Create(CreateContractDTO{
				CompanyID:   "company-1",
				Name:        "Pilot",
				StartDate:   now,
				EndDate:     now.AddDate(1, 0, 0),
				DeviceLimit: 100,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.contracts).To(gomega.HaveKey(c.ID))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should refuse an end date moved before the start date", func() {
			addContract("c1", now.AddDate(1, 0, 0))

			bad := now.AddDate(-2, 0, 0)
			_, err := service.Update("c1", UpdateContractDTO{EndDate: &bad})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
