package adaptor

import (
	"encoding/json"
	"net/http"

	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// CreateRating handles POST /api/ratings (customer)
func (h *RatingHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rating, err := h.service.CreateRating(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create rating")
		return
	}

	utils.ResponseCreated(w, "success", rating)
}

// GetHelperRatings handles GET /api/helpers/{id}/ratings (public)
func (h *RatingHandler) GetHelperRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetHelperRatings(r.Context(), chi.URLParam(r, "id"), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get helper ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetHelperSummary handles GET /api/helpers/{id}/rating-summary (public)
func (h *RatingHandler) GetHelperSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetHelperSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get helper summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}
