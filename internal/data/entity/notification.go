package entity

import (
	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypeJobPost NotificationType = "job_post"
	NotificationTypeRating  NotificationType = "rating"
	NotificationTypeAccount NotificationType = "account"
)

// Notification is a stored inbox row. Delivery (push, email) is handled by an
// external channel reading this table.
type Notification struct {
	BaseSimple
	UserID            uuid.UUID        `db:"user_id"`
	Title             string           `db:"title"`
	Message           string           `db:"message"`
	Type              NotificationType `db:"type"`
	RelatedEntityID   *uuid.UUID       `db:"related_entity_id"`
	RelatedEntityType *string          `db:"related_entity_type"`
	IsRead            bool             `db:"is_read"`
}
