package adaptor

import (
	"homecare-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	JobPost      *JobPostHandler
	Guest        *GuestHandler
	Rating       *RatingHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Booking:      NewBookingHandler(service.Booking, log),
		JobPost:      NewJobPostHandler(service.JobPost, log),
		Guest:        NewGuestHandler(service.Guest, log),
		Rating:       NewRatingHandler(service.Rating, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
