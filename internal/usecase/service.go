package usecase

import (
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/captcha"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	Booking      BookingService
	JobPost      JobPostService
	Guest        GuestService
	Rating       RatingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	booking := NewBookingService(repo, log)
	verifier := captcha.NewVerifier(config.Captcha, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      booking,
		JobPost:      NewJobPostService(repo, log),
		Guest:        NewGuestService(repo, booking, verifier, log),
		Rating:       NewRatingService(repo, log),
		Notification: NewNotificationService(repo, log),
	}
}
