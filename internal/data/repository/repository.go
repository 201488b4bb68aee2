package repository

import (
	"homecare-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Service      ServiceRepository
	Booking      BookingRepository
	Rating       RatingRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Service:      NewServiceRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Rating:       NewRatingRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
