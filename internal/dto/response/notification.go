package response

import (
	"time"

	"homecare-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	Message           string                  `json:"message"`
	Type              entity.NotificationType `json:"type"`
	RelatedEntityID   *string                 `json:"related_entity_id,omitempty"`
	RelatedEntityType *string                 `json:"related_entity_type,omitempty"`
	IsRead            bool                    `json:"is_read"`
	CreatedAt         time.Time               `json:"created_at"`
}

func NotificationToResponse(notification *entity.Notification) NotificationResponse {
	var relatedID *string
	if notification.RelatedEntityID != nil {
		id := notification.RelatedEntityID.String()
		relatedID = &id
	}

	return NotificationResponse{
		ID:                notification.ID.String(),
		Title:             notification.Title,
		Message:           notification.Message,
		Type:              notification.Type,
		RelatedEntityID:   relatedID,
		RelatedEntityType: notification.RelatedEntityType,
		IsRead:            notification.IsRead,
		CreatedAt:         notification.CreatedAt,
	}
}
