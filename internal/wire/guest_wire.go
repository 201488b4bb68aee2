package wire

import (
	"homecare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGuest(r chi.Router, guestHandler *adaptor.GuestHandler) {
	// ==================== PUBLIC ROUTES ====================
	// Unauthenticated but captcha gated.
	r.Post("/api/guest/bookings", guestHandler.CreateGuestBooking)
}
