package response

import (
	"fmt"
	"time"

	"homecare-booking/internal/data/entity"
)

type BookingResponse struct {
	ID                string                `json:"id"`
	OrderID           string                `json:"order_id"`
	CustomerID        string                `json:"customer_id"`
	HelperID          *string               `json:"helper_id,omitempty"`
	ServiceID         string                `json:"service_id"`
	ServiceName       string                `json:"service_name,omitempty"`
	StartDate         string                `json:"start_date"`
	EndDate           string                `json:"end_date"`
	ShiftStart        string                `json:"shift_start"`
	ShiftEnd          string                `json:"shift_end"`
	Quantity          float64               `json:"quantity"`
	TotalPrice        float64               `json:"total_price"`
	Status            entity.BookingStatus  `json:"status"`
	ApprovalStatus    entity.ApprovalStatus `json:"approval_status,omitempty"`
	IsJobPost         bool                  `json:"is_job_post"`
	PaymentStatus     entity.PaymentStatus  `json:"payment_status"`
	CustomerConfirmed bool                  `json:"customer_confirmed"`
	HelperConfirmed   bool                  `json:"helper_confirmed"`
	IsRated           bool                  `json:"is_rated"`
	Notes             *string               `json:"notes,omitempty"`
	RejectionReason   *string               `json:"rejection_reason,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// FormatClock renders minutes-from-midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func BookingToResponse(booking *entity.Booking, serviceName string) BookingResponse {
	var helperID *string
	if booking.HelperID != nil {
		id := booking.HelperID.String()
		helperID = &id
	}

	return BookingResponse{
		ID:                booking.ID.String(),
		OrderID:           booking.OrderID,
		CustomerID:        booking.CustomerID.String(),
		HelperID:          helperID,
		ServiceID:         booking.ServiceID.String(),
		ServiceName:       serviceName,
		StartDate:         booking.StartDate.Format("2006-01-02"),
		EndDate:           booking.EndDate.Format("2006-01-02"),
		ShiftStart:        FormatClock(booking.ShiftStart),
		ShiftEnd:          FormatClock(booking.ShiftEnd),
		Quantity:          booking.Quantity,
		TotalPrice:        booking.TotalPrice,
		Status:            booking.Status,
		ApprovalStatus:    booking.ApprovalStatus,
		IsJobPost:         booking.IsJobPost,
		PaymentStatus:     booking.PaymentStatus,
		CustomerConfirmed: booking.CustomerConfirmed,
		HelperConfirmed:   booking.HelperConfirmed,
		IsRated:           booking.IsRated,
		Notes:             booking.Notes,
		RejectionReason:   booking.RejectionReason,
		CreatedAt:         booking.CreatedAt,
	}
}
