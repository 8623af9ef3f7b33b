package notification

import (
	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	userDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(n *notificationDatamodel.Notification) error
	GetByID(id string) (*notificationDatamodel.Notification, error)
	ListByUser(userID string) ([]*notificationDatamodel.Notification, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
	Delete(id string) error
}

// AdminLister resolves the recipients of admin-wide fan-outs.
type AdminLister interface {
	ListByRoleName(roleName string) ([]*userDatamodel.User, error)
}

type ServiceAPI interface {
	Create(userID string, ntype notificationDatamodel.Type, title, message string) (*notificationDatamodel.Notification, error)
	NotifySuperAdmins(ntype notificationDatamodel.Type, title, message string) error
	ListByUser(userID string) ([]*notificationDatamodel.Notification, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	Delete(userID, id string) error
}
