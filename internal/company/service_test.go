package company

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/AMOUAN/projet-electro/internal"
	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
)

func TestCompany(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Company Module Suite")
}

type mockRepository struct {
	companies map[string]*companyDatamodel.Company
	nextID    int

	// createErr fails the next Create once, simulating a lost race
	// against the unique name constraint.
	createErr error
	// raceWinner is inserted before the failing Create returns.
	raceWinner *companyDatamodel.Company
}

func newMockRepository() *mockRepository {
	return &mockRepository{companies: map[string]*companyDatamodel.Company{}}
}

func (m *mockRepository) GetAll() ([]*companyDatamodel.Company, error) {
	var out []*companyDatamodel.Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepository) GetByID(id string) (*companyDatamodel.Company, error) {
	return m.companies[id], nil
}

func (m *mockRepository) GetByName(name string) (*companyDatamodel.Company, error) {
	for _, c := range m.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) Create(c *companyDatamodel.Company) error {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		if m.raceWinner != nil {
			m.companies[m.raceWinner.ID] = m.raceWinner
		}
		return err
	}
	if c.ID == "" {
		m.nextID++
		c.ID = fmt.Sprintf("company-%d", m.nextID)
	}
	m.companies[c.ID] = c
	return nil
}

func (m *mockRepository) Update(c *companyDatamodel.Company) error {
	m.companies[c.ID] = c
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.companies, id)
	return nil
}

func (m *mockRepository) Counts(id string) (*Counts, error) {
	return &Counts{}, nil
}

var _ = ginkgo.Describe("CompanyService", func() {
	var (
		service *Service
		repo    *mockRepository
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		service = NewService(repo, testLogger)
	})

	ginkgo.Describe("GetOrCreate", func() {
		ginkgo.It("should create a company on first use", func() {
			c, err := service.GetOrCreate("Acme Sensors")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(c.Name).To(gomega.Equal("Acme Sensors"))
			gomega.Expect(repo.companies).To(gomega.HaveKey(c.ID))
		})

		ginkgo.It("should return the existing company on later calls", func() {
			first, err := service.GetOrCreate("Acme Sensors")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := service.GetOrCreate("Acme Sensors")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(second.ID).To(gomega.Equal(first.ID))
			gomega.Expect(repo.companies).To(gomega.HaveLen(1))
		})

		ginkgo.It("should trim surrounding whitespace from the name", func() {
			c, err := service.GetOrCreate("  Acme Sensors  ")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(c.Name).To(gomega.Equal("Acme Sensors"))
		})

		ginkgo.It("should re-read the winner's row after losing a create race", func() {
			winner := &companyDatamodel.Company{ID: "company-winner", Name: "Acme Sensors"}
			repo.createErr = errors.New("duplicate key value violates unique constraint")
			repo.raceWinner = winner

			c, err := service.GetOrCreate("Acme Sensors")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(c.ID).To(gomega.Equal("company-winner"))
		})

		ginkgo.It("should surface the create error when no row appears", func() {
			repo.createErr = errors.New("connection reset")

			_, err := service.GetOrCreate("Acme Sensors")

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should reject a name already taken", func() {
			_, err := service.Create(CreateCompanyDTO{Name: "Acme Sensors"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(CreateCompanyDTO{Name: "Acme Sensors"})

			gomega.Expect(err).To(gomega.Equal(internal.ErrCompanyNameTaken))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should reject a rename onto another company's name", func() {
			first, err := service.Create(CreateCompanyDTO{Name: "Acme Sensors"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Create(CreateCompanyDTO{Name: "Globex"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Update(first.ID, UpdateCompanyDTO{Name: "Globex"})

			gomega.Expect(err).To(gomega.Equal(internal.ErrCompanyNameTaken))
		})
	})
})
