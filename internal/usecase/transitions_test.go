package usecase

import (
	"errors"
	"testing"

	"homecare-booking/internal/data/entity"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  entity.BookingStatus
		to    entity.BookingStatus
		valid bool
	}{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed, true},
		{entity.BookingStatusPending, entity.BookingStatusRejected, true},
		{entity.BookingStatusPending, entity.BookingStatusCancelled, true},
		{entity.BookingStatusPending, entity.BookingStatusCompleted, false},
		{entity.BookingStatusConfirmed, entity.BookingStatusCompleted, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled, true},
		{entity.BookingStatusConfirmed, entity.BookingStatusRejected, false},
		{entity.BookingStatusConfirmed, entity.BookingStatusPending, false},
		{entity.BookingStatusCompleted, entity.BookingStatusCancelled, false},
		{entity.BookingStatusCancelled, entity.BookingStatusConfirmed, false},
		{entity.BookingStatusRejected, entity.BookingStatusPending, false},
	}

	for _, tt := range cases {
		if got := canTransition(tt.from, tt.to); got != tt.valid {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestCheckTransitionTerminal(t *testing.T) {
	err := checkTransition(entity.BookingStatusCompleted, entity.BookingStatusCancelled)
	if !errors.Is(err, ErrTerminalState) {
		t.Errorf("transition out of completed: error = %v, want %v", err, ErrTerminalState)
	}

	err = checkTransition(entity.BookingStatusPending, entity.BookingStatusCompleted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending to completed: error = %v, want %v", err, ErrInvalidTransition)
	}
	if errors.Is(err, ErrTerminalState) {
		t.Error("pending is not terminal; the error must not claim it is")
	}

	err = checkTransition(entity.BookingStatusConfirmed, entity.BookingStatusRejected)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirmed to rejected: error = %v, want %v", err, ErrInvalidTransition)
	}
}
