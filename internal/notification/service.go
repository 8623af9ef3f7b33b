package notification

import (
	"log/slog"

	"github.com/AMOUAN/projet-electro/internal"
	notificationDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/notification"
	roleDatamodel "github.com/AMOUAN/projet-electro/internal/core/datamodel/role"
)

type Service struct {
	repo   RepositoryAPI
	admins AdminLister
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, admins AdminLister, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		admins: admins,
		logger: logger,
	}
}

func (s *Service) Create(userID string, ntype notificationDatamodel.Type, title, message string) (*notificationDatamodel.Notification, error) {
	n := &notificationDatamodel.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, internal.NewInternalError("failed to create notification", err)
	}
	return n, nil
}

// NotifySuperAdmins writes one notification per SUPER_ADMIN that exists
// right now; admins created later see nothing retroactively. The loop
// keeps going past individual failures so one bad row cannot starve the
// other recipients.
func (s *Service) NotifySuperAdmins(ntype notificationDatamodel.Type, title, message string) error {
	admins, err := s.admins.ListByRoleName(roleDatamodel.SuperAdmin)
	if err != nil {
		return internal.NewInternalError("failed to list admins", err)
	}

	var lastErr error
	for _, admin := range admins {
		n := &notificationDatamodel.Notification{
			UserID:  admin.ID,
			Type:    ntype,
			Title:   title,
			Message: message,
		}
		if err := s.repo.Create(n); err != nil {
			s.logger.Error("failed to notify admin", "user_id", admin.ID, "error", err)
			lastErr = err
		}
	}
	if lastErr != nil {
		return internal.NewInternalError("failed to notify some admins", lastErr)
	}

	s.logger.Info("admins notified", "type", ntype, "count", len(admins))
	return nil
}

func (s *Service) ListByUser(userID string) ([]*notificationDatamodel.Notification, error) {
	notifications, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list notifications", err)
	}
	return notifications, nil
}

func (s *Service) UnreadCount(userID string) (int64, error) {
	count, err := s.repo.UnreadCount(userID)
	if err != nil {
		return 0, internal.NewInternalError("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead only touches notifications owned by the caller.
func (s *Service) MarkRead(userID, id string) error {
	n, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.MarkRead(n.ID); err != nil {
		return internal.NewInternalError("failed to mark notification read", err)
	}
	return nil
}

func (s *Service) MarkAllRead(userID string) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return internal.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}

func (s *Service) Delete(userID, id string) error {
	n, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(n.ID); err != nil {
		return internal.NewInternalError("failed to delete notification", err)
	}
	return nil
}

func (s *Service) getOwned(userID, id string) (*notificationDatamodel.Notification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up notification", err)
	}
	if n == nil || n.UserID != userID {
		return nil, internal.NewNotFoundError("Notification not found", internal.ErrCodeNotificationNotFound)
	}
	return n, nil
}
