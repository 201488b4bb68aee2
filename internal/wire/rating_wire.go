package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== CUSTOMER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleCustomer, log))

		// POST /api/ratings - Rate a completed booking, once
		r.Post("/api/ratings", ratingHandler.CreateRating)
	})
}
