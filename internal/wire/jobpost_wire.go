package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireJobPost(
	r chi.Router,
	jobPostHandler *adaptor.JobPostHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== HELPER ROUTES ====================
	r.Route("/api/helper/job-posts", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleHelper, log))

		// GET /api/helper/job-posts - Approved, unclaimed job posts
		r.Get("/", jobPostHandler.GetOpenJobPosts)

		// PUT /api/helper/job-posts/{id}/accept - First caller wins
		r.Put("/{id}/accept", jobPostHandler.AcceptJob)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/job-posts", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		r.Put("/{id}/approve", jobPostHandler.ApproveJobPost)
		r.Put("/{id}/reject", jobPostHandler.RejectJobPost)
		r.Put("/{id}/assign", jobPostHandler.AssignHelper)
	})
}
