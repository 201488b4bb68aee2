package usecase

import (
	"fmt"
	"strings"
	"time"

	"homecare-booking/internal/data/entity"
)

// QuoteInput is a requested schedule plus the caller-supplied quantity and
// notes. Shift times are minutes from midnight.
type QuoteInput struct {
	StartDate  time.Time
	EndDate    time.Time
	ShiftStart int
	ShiftEnd   int
	Quantity   *float64
	Notes      *string
}

// QuoteResult is the derived billing quantity and total. For hourly services
// the quantity is hours per day; for quantity services it is the requested
// amount.
type QuoteResult struct {
	Quantity   float64
	TotalPrice float64
}

// Quote computes the price of a schedule against a catalog service. Pure:
// same inputs, same result, no side effects.
func Quote(svc *entity.Service, in QuoteInput) (QuoteResult, error) {
	if svc.RequiresNotes && (in.Notes == nil || strings.TrimSpace(*in.Notes) == "") {
		if svc.NotePrompt != nil && *svc.NotePrompt != "" {
			return QuoteResult{}, fmt.Errorf("%w: %s", ErrNotesRequired, *svc.NotePrompt)
		}
		return QuoteResult{}, ErrNotesRequired
	}

	switch svc.UnitType {
	case entity.PricingUnitHourly:
		days := daysInclusive(in.StartDate, in.EndDate)
		hoursPerDay := float64(in.ShiftEnd-in.ShiftStart) / 60.0

		if days <= 0 || hoursPerDay <= 0 {
			return QuoteResult{}, fmt.Errorf("%w: %d day(s), %.2f hour(s) per day", ErrInvalidSchedule, days, hoursPerDay)
		}
		if hoursPerDay < svc.MinQuantity {
			return QuoteResult{}, fmt.Errorf("%w: minimum %.1f hour(s) per day", ErrBelowMinimum, svc.MinQuantity)
		}

		return QuoteResult{
			Quantity:   hoursPerDay,
			TotalPrice: float64(days) * hoursPerDay * svc.UnitPrice,
		}, nil

	case entity.PricingUnitQuantity:
		if in.Quantity == nil {
			return QuoteResult{}, fmt.Errorf("%w: quantity is required", ErrBelowMinimum)
		}
		if *in.Quantity < svc.MinQuantity {
			return QuoteResult{}, fmt.Errorf("%w: minimum %.1f", ErrBelowMinimum, svc.MinQuantity)
		}

		return QuoteResult{
			Quantity:   *in.Quantity,
			TotalPrice: *in.Quantity * svc.UnitPrice,
		}, nil

	default:
		return QuoteResult{}, fmt.Errorf("unknown pricing unit %q", svc.UnitType)
	}
}

// daysInclusive counts calendar days in the closed range start..end.
func daysInclusive(start, end time.Time) int {
	startDay := start.Truncate(24 * time.Hour)
	endDay := end.Truncate(24 * time.Hour)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}

// parseClock converts "15:04" to minutes from midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// parseDate converts "2006-01-02" to a UTC midnight time.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}
