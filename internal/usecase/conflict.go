package usecase

import (
	"time"

	"homecare-booking/internal/data/entity"
)

// window is a candidate occupancy: a closed date range with a daily shift.
type window struct {
	startDate  time.Time
	endDate    time.Time
	shiftStart int
	shiftEnd   int
}

// overlaps reports whether two windows collide. Dates are compared as closed
// intervals; shift times as open intervals, so a shift ending exactly when
// the other starts is not a conflict.
func overlaps(a, b window) bool {
	datesIntersect := !a.startDate.After(b.endDate) && !a.endDate.Before(b.startDate)
	shiftsIntersect := a.shiftStart < b.shiftEnd && a.shiftEnd > b.shiftStart
	return datesIntersect && shiftsIntersect
}

// hasConflict checks the candidate window against a helper's existing
// bookings. The repository query already filters to non-terminal statuses and
// excludes the candidate's own ID on updates; the status check here is kept
// so the predicate stands on its own.
func hasConflict(existing []*entity.Booking, candidate window) bool {
	for _, b := range existing {
		if b.Status.IsTerminal() {
			continue
		}
		if overlaps(window{b.StartDate, b.EndDate, b.ShiftStart, b.ShiftEnd}, candidate) {
			return true
		}
	}
	return false
}
