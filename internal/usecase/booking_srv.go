package usecase

import (
	"context"
	"fmt"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetHelperBookings(ctx context.Context, helperID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, callerID uuid.UUID, callerRole string, bookingID string) (*response.BookingResponse, error)
	UpdateSchedule(ctx context.Context, callerID uuid.UUID, bookingID string, req *request.UpdateScheduleRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, callerID uuid.UUID, callerRole string, bookingID string, reason *string) error

	// Helper-side operations on an assigned booking.
	AcceptBooking(ctx context.Context, helperID uuid.UUID, bookingID string) error
	RejectBooking(ctx context.Context, helperID uuid.UUID, bookingID string, reason *string) error

	// Dual-sided completion confirmation.
	ConfirmCompletion(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error)

	// External payment-confirmed signal.
	ConfirmPayment(ctx context.Context, bookingID string) error

	// ExpireOverdue cancels pending bookings whose start has already passed.
	// Returns how many were cancelled.
	ExpireOverdue(ctx context.Context) (int, error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier *notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: newNotifier(repo.Notification, log),
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	svc, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("look up service: %w", err)
	}
	if svc == nil || !svc.IsActive {
		return nil, fmt.Errorf("service %s: %w", req.ServiceID, ErrNotFound)
	}

	input, err := parseScheduleInput(req.StartDate, req.EndDate, req.ShiftStart, req.ShiftEnd, req.Quantity, req.Notes)
	if err != nil {
		return nil, err
	}

	quote, err := Quote(svc, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:       utils.GenerateOrderID(),
		CustomerID:    customerID,
		ServiceID:     serviceID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		ShiftStart:    input.ShiftStart,
		ShiftEnd:      input.ShiftEnd,
		Quantity:      quote.Quantity,
		TotalPrice:    quote.TotalPrice,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusUnpaid,
		Notes:         req.Notes,
	}

	if req.HelperID != nil {
		// Direct booking: the chosen helper must exist and be free in the
		// requested window. The booking stays pending until the helper
		// accepts.
		helperID, err := uuid.Parse(*req.HelperID)
		if err != nil {
			return nil, fmt.Errorf("invalid helper ID format %s: %w", *req.HelperID, err)
		}

		helper, err := s.repo.User.FindByID(ctx, helperID)
		if err != nil {
			return nil, fmt.Errorf("look up helper: %w", err)
		}
		if helper == nil || helper.Role != entity.RoleHelper || !helper.IsActive {
			return nil, fmt.Errorf("helper %s: %w", *req.HelperID, ErrNotFound)
		}

		existing, err := s.repo.Booking.FindActiveForHelper(ctx, helperID, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("check helper schedule: %w", err)
		}
		if hasConflict(existing, window{input.StartDate, input.EndDate, input.ShiftStart, input.ShiftEnd}) {
			return nil, ErrScheduleConflict
		}

		booking.HelperID = &helperID
		booking.ApprovalStatus = entity.ApprovalStatusApproved
	} else {
		// Job post: open call for helpers, gated on admin approval.
		booking.IsJobPost = true
		booking.ApprovalStatus = entity.ApprovalStatusPending
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if booking.HelperID != nil {
		s.notifier.notifyBooking(ctx, *booking.HelperID,
			"New booking request",
			fmt.Sprintf("You have been requested for %s (%s to %s)", svc.Name, req.StartDate, req.EndDate),
			booking.ID)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("customer_id", customerID.String()),
		zap.Bool("is_job_post", booking.IsJobPost),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, svc.Name)
	return &resp, nil
}

func (s *bookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByCustomerID(ctx, customerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get customer bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count customer bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, bookings), req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetHelperBookings(ctx context.Context, helperID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByHelperID(ctx, helperID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get helper bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByHelperID(ctx, helperID)
	if err != nil {
		return nil, fmt.Errorf("count helper bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, bookings), req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, callerID uuid.UUID, callerRole string, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerRole != string(entity.RoleAdmin) && !isParty(booking, callerID) {
		return nil, ErrNotAuthorized
	}

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

func (s *bookingService) UpdateSchedule(ctx context.Context, callerID uuid.UUID, bookingID string, req *request.UpdateScheduleRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != callerID {
		return nil, ErrNotAuthorized
	}
	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
	}

	svc, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("look up service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", booking.ServiceID.String(), ErrNotFound)
	}

	input, err := parseScheduleInput(req.StartDate, req.EndDate, req.ShiftStart, req.ShiftEnd, req.Quantity, req.Notes)
	if err != nil {
		return nil, err
	}

	// Price always follows from schedule and quantity, never from the caller.
	quote, err := Quote(svc, input)
	if err != nil {
		return nil, err
	}

	if booking.HelperID != nil {
		existing, err := s.repo.Booking.FindActiveForHelper(ctx, *booking.HelperID, booking.ID)
		if err != nil {
			return nil, fmt.Errorf("check helper schedule: %w", err)
		}
		if hasConflict(existing, window{input.StartDate, input.EndDate, input.ShiftStart, input.ShiftEnd}) {
			return nil, ErrScheduleConflict
		}
	}

	booking.StartDate = input.StartDate
	booking.EndDate = input.EndDate
	booking.ShiftStart = input.ShiftStart
	booking.ShiftEnd = input.ShiftEnd
	booking.Quantity = quote.Quantity
	booking.TotalPrice = quote.TotalPrice
	booking.Notes = req.Notes

	updated, err := s.repo.Booking.UpdateSchedule(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	if !updated {
		// Lost the race against a terminal transition.
		return nil, fmt.Errorf("%w: booking is no longer editable", ErrTerminalState)
	}

	if booking.HelperID != nil {
		s.notifier.notifyBooking(ctx, *booking.HelperID,
			"Booking rescheduled",
			fmt.Sprintf("Booking %s has a new schedule: %s to %s", booking.OrderID, req.StartDate, req.EndDate),
			booking.ID)
	}

	s.log.Info("Booking schedule updated",
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking, svc.Name)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, callerID uuid.UUID, callerRole string, bookingID string, reason *string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if callerRole != string(entity.RoleAdmin) && booking.CustomerID != callerID {
		return ErrNotAuthorized
	}
	if err := checkTransition(booking.Status, entity.BookingStatusCancelled); err != nil {
		return err
	}

	cancelled, err := s.repo.Booking.CancelWithReason(ctx, booking.ID, reason)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if !cancelled {
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
	}

	if booking.HelperID != nil {
		s.notifier.notifyBooking(ctx, *booking.HelperID,
			"Booking cancelled",
			fmt.Sprintf("Booking %s has been cancelled", booking.OrderID),
			booking.ID)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
	)

	return nil
}

// AcceptBooking confirms a direct booking the customer addressed to this
// helper. The schedule is conflict-checked again at acceptance time.
func (s *bookingService) AcceptBooking(ctx context.Context, helperID uuid.UUID, bookingID string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.HelperID == nil || *booking.HelperID != helperID {
		return ErrNotAuthorized
	}
	if err := checkTransition(booking.Status, entity.BookingStatusConfirmed); err != nil {
		return err
	}

	existing, err := s.repo.Booking.FindActiveForHelper(ctx, helperID, booking.ID)
	if err != nil {
		return fmt.Errorf("check helper schedule: %w", err)
	}
	if hasConflict(existing, window{booking.StartDate, booking.EndDate, booking.ShiftStart, booking.ShiftEnd}) {
		return ErrScheduleConflict
	}

	confirmed, err := s.repo.Booking.ConfirmFrom(ctx, booking.ID, entity.BookingStatusPending)
	if err != nil {
		return fmt.Errorf("confirm booking: %w", err)
	}
	if !confirmed {
		return fmt.Errorf("%w: booking is no longer pending", ErrTerminalState)
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Booking confirmed",
		fmt.Sprintf("Your booking %s has been accepted", booking.OrderID),
		booking.ID)

	s.log.Info("Booking accepted by helper",
		zap.String("booking_id", booking.ID.String()),
		zap.String("helper_id", helperID.String()),
	)

	return nil
}

func (s *bookingService) RejectBooking(ctx context.Context, helperID uuid.UUID, bookingID string, reason *string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.HelperID == nil || *booking.HelperID != helperID {
		return ErrNotAuthorized
	}
	if err := checkTransition(booking.Status, entity.BookingStatusRejected); err != nil {
		return err
	}

	rejected, err := s.repo.Booking.RejectWithReason(ctx, booking.ID, reason)
	if err != nil {
		return fmt.Errorf("reject booking: %w", err)
	}
	if !rejected {
		return fmt.Errorf("%w: booking is no longer pending", ErrTerminalState)
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Booking rejected",
		fmt.Sprintf("Your booking %s was declined by the helper", booking.OrderID),
		booking.ID)

	s.log.Info("Booking rejected by helper",
		zap.String("booking_id", booking.ID.String()),
		zap.String("helper_id", helperID.String()),
	)

	return nil
}

func (s *bookingService) ConfirmCompletion(ctx context.Context, callerID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	helperSide := false
	switch {
	case booking.CustomerID == callerID:
	case booking.HelperID != nil && *booking.HelperID == callerID:
		helperSide = true
	default:
		return nil, ErrNotAuthorized
	}

	if s.now().Before(booking.ScheduledEnd()) {
		return nil, fmt.Errorf("%w: scheduled end is %s", ErrTooEarly, booking.ScheduledEnd().Format(time.RFC3339))
	}

	// Re-confirming after completion is a no-op.
	if booking.Status == entity.BookingStatusCompleted {
		resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
		return &resp, nil
	}

	if err := checkTransition(booking.Status, entity.BookingStatusCompleted); err != nil {
		return nil, err
	}

	recorded, err := s.repo.Booking.SetPartyConfirmed(ctx, booking.ID, helperSide)
	if err != nil {
		return nil, fmt.Errorf("record confirmation: %w", err)
	}
	if !recorded {
		// Status changed between load and update. A concurrent completion by
		// the other party is fine; anything else left the booking terminal.
		booking, err = s.loadBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if booking.Status == entity.BookingStatusCompleted {
			resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
			return &resp, nil
		}
		return nil, fmt.Errorf("%w: booking is no longer confirmed", ErrTerminalState)
	}

	completed, err := s.repo.Booking.CompleteIfBothConfirmed(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}

	booking, err = s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if completed {
		s.notifier.notifyBooking(ctx, booking.CustomerID,
			"Booking completed",
			fmt.Sprintf("Booking %s is complete. You can now rate your helper.", booking.OrderID),
			booking.ID)
		if booking.HelperID != nil {
			s.notifier.notifyBooking(ctx, *booking.HelperID,
				"Booking completed",
				fmt.Sprintf("Booking %s is complete", booking.OrderID),
				booking.ID)
		}

		s.log.Info("Booking completed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("order_id", booking.OrderID),
		)
	}

	resp := response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	return &resp, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, bookingID string) error {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if _, err := s.repo.Booking.SetPaymentStatus(ctx, booking.ID, entity.PaymentStatusPaid); err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Payment received",
		fmt.Sprintf("Payment for booking %s has been confirmed", booking.OrderID),
		booking.ID)

	s.log.Info("Payment confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
	)

	return nil
}

func (s *bookingService) ExpireOverdue(ctx context.Context) (int, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	elapsed := now.Hour()*60 + now.Minute()

	overdue, err := s.repo.Booking.FindExpiredPending(ctx, today, elapsed)
	if err != nil {
		return 0, fmt.Errorf("find expired bookings: %w", err)
	}

	reason := "Automatically cancelled: no confirmation before the scheduled start"
	expired := 0
	for _, booking := range overdue {
		cancelled, err := s.repo.Booking.CancelWithReason(ctx, booking.ID, &reason)
		if err != nil {
			s.log.Error("Failed to expire booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
			)
			continue
		}
		if !cancelled {
			// Confirmed or cancelled in the meantime.
			continue
		}
		expired++

		s.notifier.notifyBooking(ctx, booking.CustomerID,
			"Booking expired",
			fmt.Sprintf("Booking %s was cancelled because it was not confirmed in time", booking.OrderID),
			booking.ID)
	}

	if expired > 0 {
		s.log.Info("Expired overdue bookings", zap.Int("count", expired))
	}

	return expired, nil
}

// ==================== HELPERS ====================

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return booking, nil
}

func (s *bookingService) serviceName(ctx context.Context, serviceID uuid.UUID) string {
	svc, _ := s.repo.Service.FindByID(ctx, serviceID)
	if svc == nil {
		return ""
	}
	return svc.Name
}

func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	}
	return responses
}

func isParty(booking *entity.Booking, userID uuid.UUID) bool {
	if booking.CustomerID == userID {
		return true
	}
	return booking.HelperID != nil && *booking.HelperID == userID
}

func parseScheduleInput(startDate, endDate, shiftStart, shiftEnd string, quantity *float64, notes *string) (QuoteInput, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return QuoteInput{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return QuoteInput{}, err
	}
	shiftFrom, err := parseClock(shiftStart)
	if err != nil {
		return QuoteInput{}, err
	}
	shiftTo, err := parseClock(shiftEnd)
	if err != nil {
		return QuoteInput{}, err
	}

	return QuoteInput{
		StartDate:  start,
		EndDate:    end,
		ShiftStart: shiftFrom,
		ShiftEnd:   shiftTo,
		Quantity:   quantity,
		Notes:      notes,
	}, nil
}
