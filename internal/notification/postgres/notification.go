package postgres

import (
	"errors"

	"gorm.io/gorm"

	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	"github.com/AMOUAN/projet-electro/internal/notification"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *notificationDatamodel.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id string) (*notificationDatamodel.Notification, error) {
	var n notificationDatamodel.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByUser(userID string) ([]*notificationDatamodel.Notification, error) {
	var notifications []*notificationDatamodel.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(id string) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	return r.db.Model(&notificationDatamodel.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(id string) error {
	return r.db.Delete(&notificationDatamodel.Notification{}, "id = ?", id).Error
}
