package usecase

import (
	"context"
	"fmt"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/captcha"
	"homecare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GuestService interface {
	// CreateGuestBooking provisions a customer account and its first booking
	// in one call, gated on a captcha check.
	CreateGuestBooking(ctx context.Context, req *request.GuestBookingRequest) (*response.GuestBookingResponse, error)
}

type guestService struct {
	repo     *repository.Repository
	bookings BookingService
	captcha  captcha.Verifier
	log      *zap.Logger
}

func NewGuestService(repo *repository.Repository, bookings BookingService, verifier captcha.Verifier, log *zap.Logger) GuestService {
	return &guestService{
		repo:     repo,
		bookings: bookings,
		captcha:  verifier,
		log:      log.With(zap.String("service", "guest")),
	}
}

func (s *guestService) CreateGuestBooking(ctx context.Context, req *request.GuestBookingRequest) (*response.GuestBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Guest booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ok, err := s.captcha.Verify(ctx, req.CaptchaToken)
	if err != nil {
		return nil, fmt.Errorf("verify captcha: %w", err)
	}
	if !ok {
		return nil, ErrCaptchaFailed
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	tempPassword, err := utils.GenerateTempPassword(12)
	if err != nil {
		return nil, fmt.Errorf("generate temp password: %w", err)
	}

	hash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       hash,
		Phone:              req.Phone,
		Role:               entity.RoleCustomer,
		MustChangePassword: true,
		IsActive:           true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to provision guest account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create guest account: %w", err)
	}

	booking, err := s.bookings.CreateBooking(ctx, user.ID, &req.Booking)
	if err != nil {
		// The account stays; the guest can log in with the temp password and
		// retry the booking.
		s.log.Warn("Guest account created but booking failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, err
	}

	s.log.Info("Guest booking provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("booking_id", booking.ID),
	)

	return &response.GuestBookingResponse{
		Booking:      *booking,
		User:         response.UserToResponse(user),
		TempPassword: tempPassword,
	}, nil
}
