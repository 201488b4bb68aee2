package usecase

import (
	"context"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifier writes inbox notifications. A failed write is logged and dropped:
// a notification outage must never roll back the booking mutation that
// triggered it.
type notifier struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

func newNotifier(repo repository.NotificationRepository, log *zap.Logger) *notifier {
	return &notifier{
		repo: repo,
		log:  log.With(zap.String("component", "notifier")),
	}
}

func (n *notifier) notifyBooking(ctx context.Context, userID uuid.UUID, title, message string, bookingID uuid.UUID) {
	n.notify(ctx, userID, title, message, entity.NotificationTypeBooking, &bookingID, "booking")
}

func (n *notifier) notify(ctx context.Context, userID uuid.UUID, title, message string, ntype entity.NotificationType, relatedID *uuid.UUID, relatedType string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    ntype,
		IsRead:  false,
	}
	if relatedID != nil {
		notification.RelatedEntityID = relatedID
		notification.RelatedEntityType = &relatedType
	}

	if err := n.repo.Create(ctx, notification); err != nil {
		n.log.Warn("Failed to store notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("title", title),
		)
	}
}
