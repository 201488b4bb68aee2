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

type JobPostHandler struct {
	service usecase.JobPostService
	log     *zap.Logger
}

func NewJobPostHandler(service usecase.JobPostService, log *zap.Logger) *JobPostHandler {
	return &JobPostHandler{
		service: service,
		log:     log.With(zap.String("handler", "jobpost")),
	}
}

// GetOpenJobPosts handles GET /api/helper/job-posts (helper)
func (h *JobPostHandler) GetOpenJobPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetOpenJobPosts(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get job posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

// AcceptJob handles PUT /api/helper/job-posts/{id}/accept (helper)
func (h *JobPostHandler) AcceptJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.AcceptJob(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "accept job")
		return
	}

	utils.ResponseSuccess(w, "job accepted", nil)
}

// ApproveJobPost handles PUT /api/admin/job-posts/{id}/approve (admin)
func (h *JobPostHandler) ApproveJobPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.ApproveJobPost(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "approve job post")
		return
	}

	utils.ResponseSuccess(w, "job post approved", nil)
}

// RejectJobPost handles PUT /api/admin/job-posts/{id}/reject (admin)
func (h *JobPostHandler) RejectJobPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RejectBookingRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.service.RejectJobPost(r.Context(), userID, chi.URLParam(r, "id"), req.Reason); err != nil {
		handleServiceError(w, h.log, err, "reject job post")
		return
	}

	utils.ResponseSuccess(w, "job post rejected", nil)
}

// AssignHelper handles PUT /api/admin/job-posts/{id}/assign (admin)
func (h *JobPostHandler) AssignHelper(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AssignHelperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.AssignHelper(r.Context(), userID, chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(w, h.log, err, "assign helper")
		return
	}

	utils.ResponseSuccess(w, "helper assigned", nil)
}
