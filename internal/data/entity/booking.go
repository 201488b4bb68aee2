package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether the status has no outgoing transitions.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Booking covers both direct bookings (helper chosen by the customer) and
// job posts (no helper yet, open for self-assignment after admin approval).
// ShiftStart/ShiftEnd are minutes from midnight and apply to every day in
// the StartDate..EndDate range.
type Booking struct {
	Base
	OrderID           string         `db:"order_id"`
	CustomerID        uuid.UUID      `db:"customer_id"`
	HelperID          *uuid.UUID     `db:"helper_id"`
	ServiceID         uuid.UUID      `db:"service_id"`
	StartDate         time.Time      `db:"start_date"`
	EndDate           time.Time      `db:"end_date"`
	ShiftStart        int            `db:"shift_start"`
	ShiftEnd          int            `db:"shift_end"`
	Quantity          float64        `db:"quantity"`
	TotalPrice        float64        `db:"total_price"`
	Status            BookingStatus  `db:"status"`
	ApprovalStatus    ApprovalStatus `db:"approval_status"`
	IsJobPost         bool           `db:"is_job_post"`
	PaymentStatus     PaymentStatus  `db:"payment_status"`
	CustomerConfirmed bool           `db:"customer_confirmed"`
	HelperConfirmed   bool           `db:"helper_confirmed"`
	IsRated           bool           `db:"is_rated"`
	Notes             *string        `db:"notes"`
	RejectionReason   *string        `db:"rejection_reason"`
	ApprovedBy        *uuid.UUID     `db:"approved_by"`
	ApprovalDate      *time.Time     `db:"approval_date"`
}

// ScheduledEnd is the instant the work is scheduled to finish: the shift end
// on the last day of the range. Completion cannot be confirmed before it.
func (b *Booking) ScheduledEnd() time.Time {
	return b.EndDate.Add(time.Duration(b.ShiftEnd) * time.Minute)
}
