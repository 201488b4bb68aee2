package usecase

import (
	"fmt"

	"homecare-booking/internal/data/entity"
)

// transitionMap lists the legal next statuses per current status. Terminal
// statuses have no entry.
var transitionMap = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending: {
		entity.BookingStatusConfirmed,
		entity.BookingStatusRejected,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusConfirmed: {
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
}

func canTransition(from, to entity.BookingStatus) bool {
	for _, allowed := range transitionMap[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// checkTransition distinguishes a terminal-state violation from a merely
// illegal move out of a live status.
func checkTransition(from, to entity.BookingStatus) error {
	if canTransition(from, to) {
		return nil
	}
	if from.IsTerminal() {
		return fmt.Errorf("%w: cannot move %s booking to %s", ErrTerminalState, from, to)
	}
	return fmt.Errorf("%w: cannot move %s booking to %s", ErrInvalidTransition, from, to)
}
