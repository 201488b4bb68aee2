package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps business errors to HTTP status codes with
// errors.Is. Anything unrecognized is a storage or programming fault and
// surfaces as a 500 without leaking detail.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrNotAuthorized):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrScheduleConflict),
		errors.Is(err, usecase.ErrAlreadyClaimed),
		errors.Is(err, usecase.ErrAlreadyRated),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrTerminalState),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidSchedule),
		errors.Is(err, usecase.ErrBelowMinimum),
		errors.Is(err, usecase.ErrNotesRequired),
		errors.Is(err, usecase.ErrNotApproved),
		errors.Is(err, usecase.ErrNotPendingApproval),
		errors.Is(err, usecase.ErrTooEarly),
		errors.Is(err, usecase.ErrNotCompleted),
		errors.Is(err, usecase.ErrCaptchaFailed):
		log.Warn(operation+" failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid") && strings.Contains(errMsg, "format"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
