package usecase

import (
	"context"
	"fmt"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	// CreateRating records a one-per-booking score from the customer and
	// folds it into the helper's running average.
	CreateRating(ctx context.Context, customerID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	GetHelperRatings(ctx context.Context, helperID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error)
	GetHelperSummary(ctx context.Context, helperID string) (*response.HelperRatingSummary, error)
}

type ratingService struct {
	repo     *repository.Repository
	notifier *notifier
	log      *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo:     repo,
		notifier: newNotifier(repo.Notification, log),
		log:      log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) CreateRating(ctx context.Context, customerID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create rating validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	if booking.CustomerID != customerID {
		return nil, ErrNotAuthorized
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: booking is %s", ErrNotCompleted, booking.Status)
	}
	if booking.IsRated {
		return nil, ErrAlreadyRated
	}
	if booking.HelperID == nil {
		return nil, fmt.Errorf("booking %s has no helper: %w", req.BookingID, ErrNotFound)
	}

	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:  booking.ID,
		CustomerID: customerID,
		HelperID:   *booking.HelperID,
		Score:      req.Score,
		Comment:    req.Comment,
	}

	created, err := s.repo.Rating.CreateWithAggregate(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	if !created {
		// Another request rated this booking first.
		return nil, ErrAlreadyRated
	}

	s.notifier.notifyBooking(ctx, *booking.HelperID,
		"New rating",
		fmt.Sprintf("You received a %d-star rating for booking %s", req.Score, booking.OrderID),
		booking.ID)

	s.log.Info("Rating created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("helper_id", booking.HelperID.String()),
		zap.Int("score", req.Score),
	)

	resp := s.toResponse(ctx, rating)
	return &resp, nil
}

func (s *ratingService) GetHelperRatings(ctx context.Context, helperID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error) {
	id, err := uuid.Parse(helperID)
	if err != nil {
		return nil, fmt.Errorf("invalid helper ID format %s: %w", helperID, err)
	}

	ratings, err := s.repo.Rating.FindByHelperID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get helper ratings: %w", err)
	}

	total, err := s.repo.Rating.CountByHelperID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count helper ratings: %w", err)
	}

	responses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		responses[i] = s.toResponse(ctx, rating)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *ratingService) GetHelperSummary(ctx context.Context, helperID string) (*response.HelperRatingSummary, error) {
	id, err := uuid.Parse(helperID)
	if err != nil {
		return nil, fmt.Errorf("invalid helper ID format %s: %w", helperID, err)
	}

	helper, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up helper: %w", err)
	}
	if helper == nil || helper.Role != entity.RoleHelper {
		return nil, fmt.Errorf("helper %s: %w", helperID, ErrNotFound)
	}

	return &response.HelperRatingSummary{
		HelperID:      helper.ID.String(),
		HelperName:    helper.Username,
		RatingAverage: helper.RatingAverage,
		RatingCount:   helper.RatingCount,
	}, nil
}

func (s *ratingService) toResponse(ctx context.Context, rating *entity.Rating) response.RatingResponse {
	customerName := ""
	if customer, _ := s.repo.User.FindByID(ctx, rating.CustomerID); customer != nil {
		customerName = customer.Username
	}
	return response.RatingToResponse(rating, customerName)
}
