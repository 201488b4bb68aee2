package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"

	"github.com/google/uuid"
)

func newTestBookingService(repo *repository.Repository, now time.Time) *bookingService {
	svc := NewBookingService(repo, testLogger()).(*bookingService)
	svc.now = func() time.Time { return now }
	return svc
}

func seedService(services *fakeServiceRepo) uuid.UUID {
	id := uuid.New()
	services.put(&entity.Service{
		Base:        entity.Base{ID: id},
		Name:        "House Cleaning",
		UnitType:    entity.PricingUnitHourly,
		UnitPrice:   50000,
		MinQuantity: 2,
		IsActive:    true,
	})
	return id
}

func seedHelper(users *fakeUserRepo) uuid.UUID {
	id := uuid.New()
	users.put(&entity.User{
		Base:     entity.Base{ID: id},
		Username: "helper",
		Email:    "helper@example.com",
		Role:     entity.RoleHelper,
		IsActive: true,
	})
	return id
}

func seedBooking(bookings *fakeBookingRepo, b *entity.Booking) *entity.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.OrderID == "" {
		b.OrderID = "HC-TEST-" + b.ID.String()[:8]
	}
	bookings.put(b)
	return b
}

func TestCreateBookingDirect(t *testing.T) {
	repo, _, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	svc := newTestBookingService(repo, date("2026-08-01"))

	helperStr := helperID.String()
	resp, err := svc.CreateBooking(context.Background(), customerID, &request.CreateBookingRequest{
		ServiceID:  serviceID.String(),
		HelperID:   &helperStr,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-02",
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if resp.Status != entity.BookingStatusPending {
		t.Errorf("Status = %s, want pending", resp.Status)
	}
	if resp.IsJobPost {
		t.Error("direct booking must not be a job post")
	}
	if resp.TotalPrice != 400000 {
		t.Errorf("TotalPrice = %v, want 400000", resp.TotalPrice)
	}
	if resp.HelperID == nil || *resp.HelperID != helperStr {
		t.Errorf("HelperID = %v, want %s", resp.HelperID, helperStr)
	}
}

func TestCreateBookingJobPost(t *testing.T) {
	repo, _, _, services := newTestRepo()
	serviceID := seedService(services)

	svc := newTestBookingService(repo, date("2026-08-01"))

	resp, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ServiceID:  serviceID.String(),
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-01",
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	if !resp.IsJobPost {
		t.Error("booking without helper must be a job post")
	}
	if resp.ApprovalStatus != entity.ApprovalStatusPending {
		t.Errorf("ApprovalStatus = %s, want pending", resp.ApprovalStatus)
	}
}

func TestCreateBookingHelperConflict(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)

	seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	svc := newTestBookingService(repo, date("2026-08-01"))

	helperStr := helperID.String()
	_, err := svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ServiceID:  serviceID.String(),
		HelperID:   &helperStr,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-01",
		ShiftStart: "10:00",
		ShiftEnd:   "14:00",
	})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("CreateBooking() error = %v, want %v", err, ErrScheduleConflict)
	}

	// A back-to-back shift on the same day is allowed.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ServiceID:  serviceID.String(),
		HelperID:   &helperStr,
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-01",
		ShiftStart: "12:00",
		ShiftEnd:   "16:00",
	})
	if err != nil {
		t.Fatalf("CreateBooking() back-to-back error = %v", err)
	}
}

func TestAcceptBooking(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusPending,
	})

	svc := newTestBookingService(repo, date("2026-08-01"))

	if err := svc.AcceptBooking(context.Background(), uuid.New(), booking.ID.String()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("AcceptBooking() by stranger: error = %v, want %v", err, ErrNotAuthorized)
	}

	if err := svc.AcceptBooking(context.Background(), helperID, booking.ID.String()); err != nil {
		t.Fatalf("AcceptBooking() error = %v", err)
	}

	got, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	if got.Status != entity.BookingStatusConfirmed {
		t.Errorf("Status = %s, want confirmed", got.Status)
	}

	// Accepting again: no longer pending.
	if err := svc.AcceptBooking(context.Background(), helperID, booking.ID.String()); err == nil {
		t.Error("second accept should fail")
	}
}

func TestConfirmCompletion(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-02"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	// Before the scheduled end neither side can confirm.
	early := newTestBookingService(repo, date("2026-09-02").Add(11*time.Hour))
	if _, err := early.ConfirmCompletion(context.Background(), customerID, booking.ID.String()); !errors.Is(err, ErrTooEarly) {
		t.Fatalf("ConfirmCompletion() before end: error = %v, want %v", err, ErrTooEarly)
	}

	svc := newTestBookingService(repo, date("2026-09-02").Add(13*time.Hour))

	if _, err := svc.ConfirmCompletion(context.Background(), uuid.New(), booking.ID.String()); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("ConfirmCompletion() by stranger: error = %v, want %v", err, ErrNotAuthorized)
	}

	// One side alone does not complete.
	resp, err := svc.ConfirmCompletion(context.Background(), helperID, booking.ID.String())
	if err != nil {
		t.Fatalf("ConfirmCompletion() helper side: error = %v", err)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Errorf("Status after one confirmation = %s, want confirmed", resp.Status)
	}
	if !resp.HelperConfirmed || resp.CustomerConfirmed {
		t.Errorf("confirmation flags = helper %v customer %v, want helper only", resp.HelperConfirmed, resp.CustomerConfirmed)
	}

	// The second side closes the booking.
	resp, err = svc.ConfirmCompletion(context.Background(), customerID, booking.ID.String())
	if err != nil {
		t.Fatalf("ConfirmCompletion() customer side: error = %v", err)
	}
	if resp.Status != entity.BookingStatusCompleted {
		t.Errorf("Status after both confirmations = %s, want completed", resp.Status)
	}

	// Re-confirming a completed booking is a no-op, not an error.
	resp, err = svc.ConfirmCompletion(context.Background(), customerID, booking.ID.String())
	if err != nil {
		t.Fatalf("ConfirmCompletion() repeat: error = %v", err)
	}
	if resp.Status != entity.BookingStatusCompleted {
		t.Errorf("Status after repeat = %s, want completed", resp.Status)
	}
}

func TestConfirmCompletionRequiresConfirmedStatus(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusPending,
	})

	svc := newTestBookingService(repo, date("2026-09-05"))

	_, err := svc.ConfirmCompletion(context.Background(), customerID, booking.ID.String())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ConfirmCompletion() on pending: error = %v, want %v", err, ErrInvalidTransition)
	}
	if errors.Is(err, ErrTerminalState) {
		t.Error("pending is not terminal; the error must not claim it is")
	}
}

func TestRejectBookingConfirmed(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	svc := newTestBookingService(repo, date("2026-08-01"))

	err := svc.RejectBooking(context.Background(), helperID, booking.ID.String(), nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("RejectBooking() on confirmed: error = %v, want %v", err, ErrInvalidTransition)
	}

	got, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	if got.Status != entity.BookingStatusConfirmed {
		t.Errorf("Status = %s, want confirmed", got.Status)
	}
}

func TestConfirmCompletionConcurrentCancel(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	// The clock hook fires between the status check and the confirmation
	// write, standing in for a cancel racing in from another request.
	svc := newTestBookingService(repo, date("2026-09-05"))
	svc.now = func() time.Time {
		reason := "changed plans"
		_, _ = repo.Booking.CancelWithReason(context.Background(), booking.ID, &reason)
		return date("2026-09-05")
	}

	_, err := svc.ConfirmCompletion(context.Background(), customerID, booking.ID.String())
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("ConfirmCompletion() after concurrent cancel: error = %v, want %v", err, ErrTerminalState)
	}

	got, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	if got.Status != entity.BookingStatusCancelled {
		t.Errorf("Status = %s, want cancelled", got.Status)
	}
}

func TestConfirmCompletionConcurrentComplete(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	// The other party finishes the booking inside the same window; the late
	// confirmation is a no-op, not an error.
	svc := newTestBookingService(repo, date("2026-09-05"))
	svc.now = func() time.Time {
		done := *booking
		done.CustomerConfirmed = true
		done.HelperConfirmed = true
		done.Status = entity.BookingStatusCompleted
		bookings.put(&done)
		return date("2026-09-05")
	}

	resp, err := svc.ConfirmCompletion(context.Background(), customerID, booking.ID.String())
	if err != nil {
		t.Fatalf("ConfirmCompletion() after concurrent completion: error = %v", err)
	}
	if resp.Status != entity.BookingStatusCompleted {
		t.Errorf("Status = %s, want completed", resp.Status)
	}
}

func TestCancelBookingTerminal(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusCompleted,
	})

	svc := newTestBookingService(repo, date("2026-09-05"))

	err := svc.CancelBooking(context.Background(), customerID, string(entity.RoleCustomer), booking.ID.String(), nil)
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("CancelBooking() on completed: error = %v, want %v", err, ErrTerminalState)
	}

	got, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	if got.Status != entity.BookingStatusCompleted {
		t.Errorf("Status = %s, completed booking must stay frozen", got.Status)
	}
}

func TestUpdateScheduleRepricesAndGuards(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()

	booking := seedBooking(bookings, &entity.Booking{
		CustomerID: customerID,
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-09-01"),
		EndDate:    date("2026-09-01"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Quantity:   4,
		TotalPrice: 200000,
		Status:     entity.BookingStatusPending,
	})

	svc := newTestBookingService(repo, date("2026-08-01"))

	resp, err := svc.UpdateSchedule(context.Background(), customerID, booking.ID.String(), &request.UpdateScheduleRequest{
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
	})
	if err != nil {
		t.Fatalf("UpdateSchedule() error = %v", err)
	}
	if resp.TotalPrice != 600000 {
		t.Errorf("TotalPrice = %v, want 600000 (3 days x 4h x 50000)", resp.TotalPrice)
	}

	if _, err := svc.UpdateSchedule(context.Background(), uuid.New(), booking.ID.String(), &request.UpdateScheduleRequest{
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-01",
		ShiftStart: "08:00",
		ShiftEnd:   "12:00",
	}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("UpdateSchedule() by stranger: error = %v, want %v", err, ErrNotAuthorized)
	}
}

func TestExpireOverdue(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)

	stale := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		ServiceID:  serviceID,
		StartDate:  date("2026-08-20"),
		EndDate:    date("2026-08-21"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusPending,
		IsJobPost:  true,
	})
	future := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		ServiceID:  serviceID,
		StartDate:  date("2026-09-10"),
		EndDate:    date("2026-09-10"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusPending,
		IsJobPost:  true,
	})
	missedToday := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		ServiceID:  serviceID,
		StartDate:  date("2026-08-30"),
		EndDate:    date("2026-08-30"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusPending,
		IsJobPost:  true,
	})
	startingNow := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		ServiceID:  serviceID,
		StartDate:  date("2026-08-30"),
		EndDate:    date("2026-08-30"),
		ShiftStart: 10 * 60,
		ShiftEnd:   14 * 60,
		Status:     entity.BookingStatusPending,
		IsJobPost:  true,
	})
	active := seedBooking(bookings, &entity.Booking{
		CustomerID: uuid.New(),
		HelperID:   &helperID,
		ServiceID:  serviceID,
		StartDate:  date("2026-08-20"),
		EndDate:    date("2026-08-21"),
		ShiftStart: 8 * 60,
		ShiftEnd:   12 * 60,
		Status:     entity.BookingStatusConfirmed,
	})

	svc := newTestBookingService(repo, date("2026-08-30").Add(10*time.Hour))

	expired, err := svc.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if expired != 2 {
		t.Fatalf("expired = %d, want 2", expired)
	}

	got, _ := repo.Booking.FindByID(context.Background(), stale.ID)
	if got.Status != entity.BookingStatusCancelled {
		t.Errorf("stale booking status = %s, want cancelled", got.Status)
	}
	got, _ = repo.Booking.FindByID(context.Background(), missedToday.ID)
	if got.Status != entity.BookingStatusCancelled {
		t.Errorf("missed booking status = %s, want cancelled", got.Status)
	}
	got, _ = repo.Booking.FindByID(context.Background(), future.ID)
	if got.Status != entity.BookingStatusPending {
		t.Errorf("future booking status = %s, want pending", got.Status)
	}
	// A booking starting this exact minute has not yet expired.
	got, _ = repo.Booking.FindByID(context.Background(), startingNow.ID)
	if got.Status != entity.BookingStatusPending {
		t.Errorf("booking starting now status = %s, want pending", got.Status)
	}
	got, _ = repo.Booking.FindByID(context.Background(), active.ID)
	if got.Status != entity.BookingStatusConfirmed {
		t.Errorf("confirmed booking status = %s, want confirmed", got.Status)
	}
}
