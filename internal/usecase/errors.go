package usecase

import (
	"errors"
)

// Business failures are sentinel errors so handlers can map them with
// errors.Is instead of matching message text. All of them are caller-facing
// and recoverable; storage faults are wrapped separately and surface as 500s.
var (
	ErrNotFound = errors.New("not found")

	// Pricing
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrBelowMinimum    = errors.New("quantity below service minimum")
	ErrNotesRequired   = errors.New("notes are required for this service")

	// Matching and assignment
	ErrScheduleConflict = errors.New("helper already has a booking in this window")
	ErrAlreadyClaimed   = errors.New("job post already has a helper")
	ErrNotApproved      = errors.New("job post is not approved for matching")

	// Approval workflow
	ErrNotPendingApproval = errors.New("job post is not pending approval")

	// State machine
	ErrTerminalState     = errors.New("booking is in a terminal state")
	ErrInvalidTransition = errors.New("transition not allowed from current status")

	// Completion
	ErrNotAuthorized = errors.New("caller is not a party to this booking")
	ErrTooEarly      = errors.New("booking has not reached its scheduled end")

	// Rating
	ErrAlreadyRated = errors.New("booking has already been rated")
	ErrNotCompleted = errors.New("booking is not completed")

	// Guest provisioning
	ErrEmailTaken    = errors.New("email already has an account")
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// Accounts
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
