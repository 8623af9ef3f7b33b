package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	companyDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/company"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
	userPostgres "github.com/AMOUAN/projet-electro/internal/user/postgres"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		db        *gorm.DB
		repo      *userPostgres.UserRepository
		userRole  *roleDatamodel.Role
		adminRole *roleDatamodel.Role
	)

	newUser := func(username, email string) *userDatamodel.User {
		return &userDatamodel.User{
			Username: username,
			Email:    email,
			Password: "hashed",
			Status:   userDatamodel.StatusPending,
			RoleID:   userRole.ID,
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&roleDatamodel.Role{},
			&companyDatamodel.Company{},
			&userDatamodel.User{},
		)
		Expect(err).NotTo(HaveOccurred())

		userRole = &roleDatamodel.Role{Name: roleDatamodel.User}
		adminRole = &roleDatamodel.Role{Name: roleDatamodel.SuperAdmin}
		Expect(db.Create(userRole).Error).NotTo(HaveOccurred())
		Expect(db.Create(adminRole).Error).NotTo(HaveOccurred())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("Create", func() {
		It("should create a user and assign a uuid", func() {
			u := newUser("jdoe", "jdoe@example.com")

			err := repo.Create(u)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).NotTo(BeEmpty())
			Expect(u.CreatedAt).NotTo(BeZero())
		})

		It("should reject a duplicate email", func() {
			Expect(repo.Create(newUser("jdoe", "jdoe@example.com"))).NotTo(HaveOccurred())

			err := repo.Create(newUser("other", "jdoe@example.com"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a duplicate username", func() {
			Expect(repo.Create(newUser("jdoe", "jdoe@example.com"))).NotTo(HaveOccurred())

			err := repo.Create(newUser("jdoe", "other@example.com"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Lookups", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUser("jdoe", "jdoe@example.com"))).NotTo(HaveOccurred())
		})

		It("should find a user by email with its role preloaded", func() {
			u, err := repo.GetByEmail("jdoe@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).NotTo(BeNil())
			Expect(u.Role.Name).To(Equal(roleDatamodel.User))
		})

		It("should find a user by username or email through either value", func() {
			byUsername, err := repo.GetByUsernameOrEmail("jdoe", "nope@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(byUsername).NotTo(BeNil())

			byEmail, err := repo.GetByUsernameOrEmail("nope", "jdoe@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(byEmail).NotTo(BeNil())
		})

		It("should return nil, nil when nothing matches", func() {
			u, err := repo.GetByEmail("missing@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())
		})
	})

	Describe("ExistsOtherWithUsernameOrEmail", func() {
		var first *userDatamodel.User

		BeforeEach(func() {
			first = newUser("jdoe", "jdoe@example.com")
			Expect(repo.Create(first)).NotTo(HaveOccurred())
		})

		It("should ignore the excluded account itself", func() {
			taken, err := repo.ExistsOtherWithUsernameOrEmail(first.ID, "jdoe", "jdoe@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeFalse())
		})

		It("should flag an identity held by another account", func() {
			Expect(repo.Create(newUser("second", "second@example.com"))).NotTo(HaveOccurred())

			taken, err := repo.ExistsOtherWithUsernameOrEmail(first.ID, "second", "new@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(taken).To(BeTrue())
		})
	})

	Describe("Activate", func() {
		var pending *userDatamodel.User

		BeforeEach(func() {
			token := "activation-token"
			expires := time.Now().Add(48 * time.Hour)
			pending = newUser("pending", "pending@example.com")
			pending.ActivationToken = &token
			pending.ActivationTokenExpires = &expires
			Expect(repo.Create(pending)).NotTo(HaveOccurred())
		})

		It("should find the account by its activation token", func() {
			u, err := repo.GetByActivationToken("activation-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(u).NotTo(BeNil())
			Expect(u.ID).To(Equal(pending.ID))
		})

		It("should set ACTIVE, store the hash and clear the token in one update", func() {
			err := repo.Activate(pending.ID, "new-hash")
			Expect(err).NotTo(HaveOccurred())

			u, err := repo.GetByID(pending.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Status).To(Equal(userDatamodel.StatusActive))
			Expect(u.Password).To(Equal("new-hash"))
			Expect(u.ActivationToken).To(BeNil())
			Expect(u.ActivationTokenExpires).To(BeNil())

			gone, err := repo.GetByActivationToken("activation-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})
	})

	Describe("Reset tokens", func() {
		var active *userDatamodel.User

		BeforeEach(func() {
			active = newUser("active", "active@example.com")
			active.Status = userDatamodel.StatusActive
			Expect(repo.Create(active)).NotTo(HaveOccurred())
		})

		It("should overwrite a previous token, invalidating it", func() {
			Expect(repo.SetResetToken(active.ID, "first-token", time.Now().Add(time.Hour))).NotTo(HaveOccurred())
			Expect(repo.SetResetToken(active.ID, "second-token", time.Now().Add(time.Hour))).NotTo(HaveOccurred())

			stale, err := repo.GetByResetToken("first-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(stale).To(BeNil())

			current, err := repo.GetByResetToken("second-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(current).NotTo(BeNil())
		})

		It("should consume the token together with storing the new hash", func() {
			Expect(repo.SetResetToken(active.ID, "reset-token", time.Now().Add(time.Hour))).NotTo(HaveOccurred())

			err := repo.ConsumeResetToken(active.ID, "reset-hash")
			Expect(err).NotTo(HaveOccurred())

			u, err := repo.GetByID(active.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Password).To(Equal("reset-hash"))
			Expect(u.ResetPasswordToken).To(BeNil())
			Expect(u.ResetPasswordTokenExpires).To(BeNil())

			gone, err := repo.GetByResetToken("reset-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})
	})

	Describe("ListByRoleName", func() {
		BeforeEach(func() {
			admin := newUser("root", "root@example.com")
			admin.RoleID = adminRole.ID
			Expect(repo.Create(admin)).NotTo(HaveOccurred())
			Expect(repo.Create(newUser("jdoe", "jdoe@example.com"))).NotTo(HaveOccurred())
		})

		It("should return only accounts holding the named role", func() {
			admins, err := repo.ListByRoleName(roleDatamodel.SuperAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(admins).To(HaveLen(1))
			Expect(admins[0].Username).To(Equal("root"))
		})

		It("should return an empty list for a role nobody holds", func() {
			users, err := repo.ListByRoleName("AUDITOR")
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})

	Describe("UpdateLastLogin", func() {
		It("should stamp the login time", func() {
			u := newUser("jdoe", "jdoe@example.com")
			Expect(repo.Create(u)).NotTo(HaveOccurred())

			at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			Expect(repo.UpdateLastLogin(u.ID, at)).NotTo(HaveOccurred())

			fresh, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.LastLogin).NotTo(BeNil())
			Expect(*fresh.LastLogin).To(BeTemporally("==", at))
		})
	})
})
