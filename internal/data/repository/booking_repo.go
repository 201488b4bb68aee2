package repository

import (
	"context"
	"fmt"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingRepository persists bookings. Every state-changing method is a single
// guarded UPDATE: the WHERE clause re-checks the state the caller decided on,
// and a false return means another writer got there first (or the state never
// matched). This is what keeps concurrent mutations of one booking serialized
// without holding locks across calls.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error)

	// Matching pool: approved job posts with no helper yet.
	FindOpenJobPosts(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountOpenJobPosts(ctx context.Context) (int64, error)

	// Conflict detection input: non-terminal bookings of a helper, optionally
	// excluding the booking being updated.
	FindActiveForHelper(ctx context.Context, helperID uuid.UUID, excludeID uuid.UUID) ([]*entity.Booking, error)

	// Sweeper input: pending bookings whose start has already passed as of the
	// given date and minutes-since-midnight.
	FindExpiredPending(ctx context.Context, date time.Time, elapsedMinutes int) ([]*entity.Booking, error)

	UpdateSchedule(ctx context.Context, booking *entity.Booking) (bool, error)
	ConfirmFrom(ctx context.Context, id uuid.UUID, from entity.BookingStatus) (bool, error)
	CancelWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error)
	RejectWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error)
	ClaimJobPost(ctx context.Context, id, helperID uuid.UUID) (bool, error)
	ApproveJobPost(ctx context.Context, id, adminID uuid.UUID) (bool, error)
	RejectJobPost(ctx context.Context, id uuid.UUID, reason *string) (bool, error)
	SetPartyConfirmed(ctx context.Context, id uuid.UUID, helperSide bool) (bool, error)
	CompleteIfBothConfirmed(ctx context.Context, id uuid.UUID) (bool, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, customer_id, helper_id, service_id,
	       start_date, end_date, shift_start, shift_end, quantity, total_price,
	       status, approval_status, is_job_post, payment_status,
	       customer_confirmed, helper_confirmed, is_rated,
	       notes, rejection_reason, approved_by, approval_date,
	       created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.CustomerID,
		&booking.HelperID,
		&booking.ServiceID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.ShiftStart,
		&booking.ShiftEnd,
		&booking.Quantity,
		&booking.TotalPrice,
		&booking.Status,
		&booking.ApprovalStatus,
		&booking.IsJobPost,
		&booking.PaymentStatus,
		&booking.CustomerConfirmed,
		&booking.HelperConfirmed,
		&booking.IsRated,
		&booking.Notes,
		&booking.RejectionReason,
		&booking.ApprovedBy,
		&booking.ApprovalDate,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_id, customer_id, helper_id, service_id,
		                      start_date, end_date, shift_start, shift_end, quantity, total_price,
		                      status, approval_status, is_job_post, payment_status,
		                      customer_confirmed, helper_confirmed, is_rated,
		                      notes, rejection_reason, approved_by, approval_date,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.CustomerID,
		booking.HelperID,
		booking.ServiceID,
		booking.StartDate,
		booking.EndDate,
		booking.ShiftStart,
		booking.ShiftEnd,
		booking.Quantity,
		booking.TotalPrice,
		booking.Status,
		booking.ApprovalStatus,
		booking.IsJobPost,
		booking.PaymentStatus,
		booking.CustomerConfirmed,
		booking.HelperConfirmed,
		booking.IsRated,
		booking.Notes,
		booking.RejectionReason,
		booking.ApprovedBy,
		booking.ApprovalDate,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("customer_id", booking.CustomerID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, customerID, limit, offset)
}

func (r *bookingRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count bookings by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE helper_id = $1
		ORDER BY start_date, shift_start
		LIMIT $2 OFFSET $3
	`

	return r.queryBookings(ctx, query, helperID, limit, offset)
}

func (r *bookingRepository) CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE helper_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, helperID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by helper ID",
			zap.Error(err),
			zap.String("helper_id", helperID.String()),
		)
		return 0, fmt.Errorf("count bookings by helper ID %s: %w", helperID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindOpenJobPosts(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE is_job_post
		  AND helper_id IS NULL
		  AND approval_status = 'approved'
		  AND status = 'pending'
		ORDER BY start_date, shift_start
		LIMIT $1 OFFSET $2
	`

	return r.queryBookings(ctx, query, limit, offset)
}

func (r *bookingRepository) CountOpenJobPosts(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE is_job_post
		  AND helper_id IS NULL
		  AND approval_status = 'approved'
		  AND status = 'pending'
	`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count open job posts", zap.Error(err))
		return 0, fmt.Errorf("count open job posts: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveForHelper(ctx context.Context, helperID uuid.UUID, excludeID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE helper_id = $1
		  AND id <> $2
		  AND status IN ('pending', 'confirmed')
	`

	return r.queryBookings(ctx, query, helperID, excludeID)
}

func (r *bookingRepository) FindExpiredPending(ctx context.Context, date time.Time, elapsedMinutes int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'pending'
		  AND (start_date < $1 OR (start_date = $1 AND shift_start < $2))
	`

	return r.queryBookings(ctx, query, date, elapsedMinutes)
}

// UpdateSchedule rewrites the schedule, quantity, derived price and notes.
// Guarded on non-terminal status so a completed or cancelled booking keeps its
// fields frozen.
func (r *bookingRepository) UpdateSchedule(ctx context.Context, booking *entity.Booking) (bool, error) {
	query := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, shift_start = $4, shift_end = $5,
		    quantity = $6, total_price = $7, notes = $8, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.StartDate,
		booking.EndDate,
		booking.ShiftStart,
		booking.ShiftEnd,
		booking.Quantity,
		booking.TotalPrice,
		booking.Notes,
	)
	if err != nil {
		r.log.Error("Failed to update booking schedule",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return false, fmt.Errorf("update schedule for booking %s: %w", booking.ID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) ConfirmFrom(ctx context.Context, id uuid.UUID, from entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) CancelWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', rejection_reason = COALESCE($2, rejection_reason), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) RejectWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'rejected', rejection_reason = COALESCE($2, rejection_reason), updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		r.log.Error("Failed to reject booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("reject booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ClaimJobPost is the compare-and-set behind job matching: of N concurrent
// claims on one post, exactly one UPDATE finds the row still unassigned,
// approved and pending. Losers see zero rows affected.
func (r *bookingRepository) ClaimJobPost(ctx context.Context, id, helperID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET helper_id = $2, is_job_post = FALSE, status = 'confirmed', updated_at = NOW()
		WHERE id = $1
		  AND is_job_post
		  AND helper_id IS NULL
		  AND approval_status = 'approved'
		  AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, helperID)
	if err != nil {
		r.log.Error("Failed to claim job post",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("helper_id", helperID.String()),
		)
		return false, fmt.Errorf("claim job post %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) ApproveJobPost(ctx context.Context, id, adminID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET approval_status = 'approved', approved_by = $2, approval_date = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_job_post AND approval_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, adminID)
	if err != nil {
		r.log.Error("Failed to approve job post",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("approve job post %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// RejectJobPost sets approval_status and status in one statement so the pair
// can never be observed half-updated.
func (r *bookingRepository) RejectJobPost(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	query := `
		UPDATE bookings
		SET approval_status = 'rejected', status = 'rejected',
		    rejection_reason = COALESCE($2, rejection_reason), updated_at = NOW()
		WHERE id = $1 AND is_job_post AND approval_status = 'pending' AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		r.log.Error("Failed to reject job post",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("reject job post %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetPartyConfirmed(ctx context.Context, id uuid.UUID, helperSide bool) (bool, error) {
	column := "customer_confirmed"
	if helperSide {
		column = "helper_confirmed"
	}

	query := `
		UPDATE bookings
		SET ` + column + ` = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to set completion confirmation",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.Bool("helper_side", helperSide),
		)
		return false, fmt.Errorf("set confirmation on booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) CompleteIfBothConfirmed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1
		  AND status = 'confirmed'
		  AND customer_confirmed
		  AND helper_confirmed
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to complete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("complete booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (bool, error) {
	query := `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to set payment status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return false, fmt.Errorf("set payment status on booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query bookings", zap.Error(err))
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
