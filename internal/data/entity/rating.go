package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	BaseSimple
	BookingID  uuid.UUID `db:"booking_id"`
	CustomerID uuid.UUID `db:"customer_id"`
	HelperID   uuid.UUID `db:"helper_id"`
	Score      int       `db:"score"` // 1-5
	Comment    *string   `db:"comment"`
}
