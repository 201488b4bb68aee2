package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (any role) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create booking or job post
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - Caller's bookings as customer
		r.Get("/api/bookings", bookingHandler.GetMyBookings)

		// GET /api/bookings/{id} - Booking details (parties and admin only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/schedule - Reschedule (owner only)
		r.Put("/api/bookings/{id}/schedule", bookingHandler.UpdateSchedule)

		// PUT /api/bookings/{id}/cancel - Cancel (owner or admin)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// PUT /api/bookings/{id}/confirm-completion - Either party
		r.Put("/api/bookings/{id}/confirm-completion", bookingHandler.ConfirmCompletion)
	})

	// ==================== HELPER ROUTES ====================
	r.Route("/api/helper/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleHelper, log))

		r.Get("/", bookingHandler.GetHelperBookings)
		r.Put("/{id}/accept", bookingHandler.AcceptBooking)
		r.Put("/{id}/reject", bookingHandler.RejectBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Put("/{id}/confirm-payment", bookingHandler.ConfirmPayment)
	})
}
