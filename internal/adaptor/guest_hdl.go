package adaptor

import (
	"encoding/json"
	"net/http"

	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type GuestHandler struct {
	service usecase.GuestService
	log     *zap.Logger
}

func NewGuestHandler(service usecase.GuestService, log *zap.Logger) *GuestHandler {
	return &GuestHandler{
		service: service,
		log:     log.With(zap.String("handler", "guest")),
	}
}

// CreateGuestBooking handles POST /api/guest/bookings (public, captcha gated)
func (h *GuestHandler) CreateGuestBooking(w http.ResponseWriter, r *http.Request) {
	var req request.GuestBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreateGuestBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "guest booking")
		return
	}

	utils.ResponseCreated(w, "success", result)
}
