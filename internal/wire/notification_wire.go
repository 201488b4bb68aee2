package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireNotification(
	r chi.Router,
	notificationHandler *adaptor.NotificationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/api/notifications", notificationHandler.GetNotifications)
		r.Put("/api/notifications/{id}/read", notificationHandler.MarkRead)
	})
}
