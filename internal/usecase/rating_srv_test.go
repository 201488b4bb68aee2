package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/dto/request"

	"github.com/google/uuid"
)

func TestCreateRating(t *testing.T) {
	repo, bookings, users, services := newTestRepo()
	serviceID := seedService(services)
	helperID := seedHelper(users)
	customerID := uuid.New()
	users.put(&entity.User{
		Base:     entity.Base{ID: customerID},
		Username: "customer",
		Role:     entity.RoleCustomer,
		IsActive: true,
	})

	// Helper already carries nine 4.0 ratings.
	helper, _ := users.FindByID(context.Background(), helperID)
	helper.RatingAverage = 4.0
	helper.RatingCount = 9
	users.put(helper)

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

	svc := NewRatingService(repo, testLogger())

	resp, err := svc.CreateRating(context.Background(), customerID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     5,
	})
	if err != nil {
		t.Fatalf("CreateRating() error = %v", err)
	}
	if resp.Score != 5 {
		t.Errorf("Score = %d, want 5", resp.Score)
	}

	helper, _ = users.FindByID(context.Background(), helperID)
	if helper.RatingCount != 10 {
		t.Errorf("RatingCount = %d, want 10", helper.RatingCount)
	}
	if math.Abs(helper.RatingAverage-4.1) > 1e-9 {
		t.Errorf("RatingAverage = %v, want 4.1", helper.RatingAverage)
	}

	got, _ := repo.Booking.FindByID(context.Background(), booking.ID)
	if !got.IsRated {
		t.Error("booking not marked rated")
	}

	// Second attempt on the same booking.
	_, err = svc.CreateRating(context.Background(), customerID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     1,
	})
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("second rating: error = %v, want %v", err, ErrAlreadyRated)
	}

	helper, _ = users.FindByID(context.Background(), helperID)
	if helper.RatingCount != 10 {
		t.Errorf("RatingCount after duplicate = %d, want 10", helper.RatingCount)
	}
}

func TestCreateRatingGuards(t *testing.T) {
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

	svc := NewRatingService(repo, testLogger())
	ctx := context.Background()

	_, err := svc.CreateRating(ctx, uuid.New(), &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     5,
	})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("rating by stranger: error = %v, want %v", err, ErrNotAuthorized)
	}

	_, err = svc.CreateRating(ctx, customerID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     5,
	})
	if !errors.Is(err, ErrNotCompleted) {
		t.Errorf("rating before completion: error = %v, want %v", err, ErrNotCompleted)
	}
}

func TestGetHelperSummary(t *testing.T) {
	repo, _, users, _ := newTestRepo()
	helperID := seedHelper(users)

	helper, _ := users.FindByID(context.Background(), helperID)
	helper.RatingAverage = 4.5
	helper.RatingCount = 12
	users.put(helper)

	svc := NewRatingService(repo, testLogger())

	summary, err := svc.GetHelperSummary(context.Background(), helperID.String())
	if err != nil {
		t.Fatalf("GetHelperSummary() error = %v", err)
	}
	if summary.RatingAverage != 4.5 || summary.RatingCount != 12 {
		t.Errorf("summary = %+v, want average 4.5 count 12", summary)
	}

	if _, err := svc.GetHelperSummary(context.Background(), uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("summary of missing helper: error = %v, want %v", err, ErrNotFound)
	}
}
