package notification

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

func TestNotification(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Notification Module Suite")
}

type mockRepository struct {
	notifications map[string]*notificationDatamodel.Notification
	nextID        int

	// failFor makes Create fail for the named recipients.
	failFor map[string]error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		notifications: map[string]*notificationDatamodel.Notification{},
		failFor:       map[string]error{},
	}
}

func (m *mockRepository) Create(n *notificationDatamodel.Notification) error {
	if err, ok := m.failFor[n.UserID]; ok {
		return err
	}
	if n.ID == "" {
		m.nextID++
		n.ID = fmt.Sprintf("notification-%d", m.nextID)
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *mockRepository) GetByID(id string) (*notificationDatamodel.Notification, error) {
	return m.notifications[id], nil
}

func (m *mockRepository) ListByUser(userID string) ([]*notificationDatamodel.Notification, error) {
	var out []*notificationDatamodel.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockRepository) MarkRead(id string) error {
	m.notifications[id].IsRead = true
	return nil
}

func (m *mockRepository) MarkAllRead(userID string) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.notifications, id)
	return nil
}

type mockAdminLister struct {
	admins  []*userDatamodel.User
	listErr error
}

func (m *mockAdminLister) ListByRoleName(roleName string) ([]*userDatamodel.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if roleName != roleDatamodel.SuperAdmin {
		return nil, nil
	}
	return m.admins, nil
}

var _ = ginkgo.Describe("NotificationService", func() {
	var (
		service *Service
		repo    *mockRepository
		admins  *mockAdminLister
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rowsFor := func(userID string) []*notificationDatamodel.Notification {
		rows, err := repo.ListByUser(userID)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return rows
	}

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		admins = &mockAdminLister{admins: []*userDatamodel.User{
			{ID: "admin-1", Username: "root"},
			{ID: "admin-2", Username: "ops"},
			{ID: "admin-3", Username: "noc"},
		}}
		service = NewService(repo, admins, testLogger)
	})

	ginkgo.Describe("NotifySuperAdmins", func() {
		ginkgo.It("should write one row per current admin", func() {
			err := service.NotifySuperAdmins(notificationDatamodel.TypeAccountPending, "New access request", "someone signed up")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.notifications).To(gomega.HaveLen(3))
			for _, id := range []string{"admin-1", "admin-2", "admin-3"} {
				rows := rowsFor(id)
				gomega.Expect(rows).To(gomega.HaveLen(1))
				gomega.Expect(rows[0].Type).To(gomega.Equal(notificationDatamodel.TypeAccountPending))
				gomega.Expect(rows[0].Title).To(gomega.Equal("New access request"))
			}
		})

		ginkgo.It("should keep notifying past a failed recipient and surface the error", func() {
			admins.admins = append(admins.admins, &userDatamodel.User{ID: "admin-4", Username: "late"})
			repo.failFor["admin-2"] = errors.New("constraint violation")

			err := service.NotifySuperAdmins(notificationDatamodel.TypeAccountPending, "New access request", "someone signed up")

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(rowsFor("admin-1")).To(gomega.HaveLen(1))
			gomega.Expect(rowsFor("admin-2")).To(gomega.BeEmpty())
			gomega.Expect(rowsFor("admin-3")).To(gomega.HaveLen(1))
			gomega.Expect(rowsFor("admin-4")).To(gomega.HaveLen(1))
		})

		ginkgo.It("should write nothing for admins created after the fan-out", func() {
			err := service.NotifySuperAdmins(notificationDatamodel.TypeSystem, "Maintenance", "window tonight")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			admins.admins = append(admins.admins, &userDatamodel.User{ID: "admin-4", Username: "late"})

			gomega.Expect(rowsFor("admin-4")).To(gomega.BeEmpty())
		})

		ginkgo.It("should fail when the recipient list cannot be resolved", func() {
			admins.listErr = errors.New("connection reset")

			err := service.NotifySuperAdmins(notificationDatamodel.TypeSystem, "Maintenance", "window tonight")

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.notifications).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Ownership checks", func() {
		var owned *notificationDatamodel.Notification

		ginkgo.BeforeEach(func() {
			var err error
			owned, err = service.Create("user-1", notificationDatamodel.TypeSystem, "Hello", "welcome")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should let the owner mark their notification read", func() {
			gomega.Expect(service.MarkRead("user-1", owned.ID)).To(gomega.Succeed())
			gomega.Expect(repo.notifications[owned.ID].IsRead).To(gomega.BeTrue())
		})

		ginkgo.It("should hide another user's notification behind not found", func() {
			err := service.MarkRead("user-2", owned.ID)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.notifications[owned.ID].IsRead).To(gomega.BeFalse())
		})

		ginkgo.It("should refuse deleting another user's notification", func() {
			err := service.Delete("user-2", owned.ID)

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.notifications).To(gomega.HaveKey(owned.ID))
		})
	})
})
