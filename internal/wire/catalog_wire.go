package wire

import (
	"homecare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, ratingHandler *adaptor.RatingHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/services", catalogHandler.GetServices)
	r.Get("/api/services/{id}", catalogHandler.GetServiceByID)

	// Helper reputation is public so customers can choose.
	r.Get("/api/helpers/{id}/ratings", ratingHandler.GetHelperRatings)
	r.Get("/api/helpers/{id}/rating-summary", ratingHandler.GetHelperSummary)
}
