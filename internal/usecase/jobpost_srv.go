package usecase

import (
	"context"
	"fmt"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobPostService interface {
	GetOpenJobPosts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ApproveJobPost(ctx context.Context, adminID uuid.UUID, bookingID string) error
	RejectJobPost(ctx context.Context, adminID uuid.UUID, bookingID string, reason *string) error

	// AcceptJob claims an open job post for the calling helper. At most one
	// helper wins; losers get ErrAlreadyClaimed.
	AcceptJob(ctx context.Context, helperID uuid.UUID, bookingID string) error

	// AssignHelper is the admin-side equivalent of AcceptJob.
	AssignHelper(ctx context.Context, adminID uuid.UUID, bookingID string, req *request.AssignHelperRequest) error
}

type jobPostService struct {
	repo     *repository.Repository
	notifier *notifier
	log      *zap.Logger
}

func NewJobPostService(repo *repository.Repository, log *zap.Logger) JobPostService {
	return &jobPostService{
		repo:     repo,
		notifier: newNotifier(repo.Notification, log),
		log:      log.With(zap.String("service", "jobpost")),
	}
}

func (s *jobPostService) GetOpenJobPosts(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindOpenJobPosts(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get open job posts: %w", err)
	}

	total, err := s.repo.Booking.CountOpenJobPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count open job posts: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = response.BookingToResponse(booking, s.serviceName(ctx, booking.ServiceID))
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *jobPostService) ApproveJobPost(ctx context.Context, adminID uuid.UUID, bookingID string) error {
	booking, err := s.loadJobPost(ctx, bookingID)
	if err != nil {
		return err
	}

	approved, err := s.repo.Booking.ApproveJobPost(ctx, booking.ID, adminID)
	if err != nil {
		return fmt.Errorf("approve job post: %w", err)
	}
	if !approved {
		return fmt.Errorf("%w: job post is %s", ErrNotPendingApproval, booking.ApprovalStatus)
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Job post approved",
		fmt.Sprintf("Your job post %s is now visible to helpers", booking.OrderID),
		booking.ID)

	s.log.Info("Job post approved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}

func (s *jobPostService) RejectJobPost(ctx context.Context, adminID uuid.UUID, bookingID string, reason *string) error {
	booking, err := s.loadJobPost(ctx, bookingID)
	if err != nil {
		return err
	}

	rejected, err := s.repo.Booking.RejectJobPost(ctx, booking.ID, reason)
	if err != nil {
		return fmt.Errorf("reject job post: %w", err)
	}
	if !rejected {
		return fmt.Errorf("%w: job post is %s", ErrNotPendingApproval, booking.ApprovalStatus)
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Job post rejected",
		fmt.Sprintf("Your job post %s was not approved", booking.OrderID),
		booking.ID)

	s.log.Info("Job post rejected",
		zap.String("booking_id", booking.ID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}

func (s *jobPostService) AcceptJob(ctx context.Context, helperID uuid.UUID, bookingID string) error {
	booking, err := s.loadJobPost(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.checkClaimable(booking); err != nil {
		return err
	}

	if err := s.checkHelperFree(ctx, helperID, booking); err != nil {
		return err
	}

	if err := s.claim(ctx, booking, helperID); err != nil {
		return err
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Helper found",
		fmt.Sprintf("A helper has accepted your job post %s", booking.OrderID),
		booking.ID)

	s.log.Info("Job post claimed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("helper_id", helperID.String()),
	)

	return nil
}

func (s *jobPostService) AssignHelper(ctx context.Context, adminID uuid.UUID, bookingID string, req *request.AssignHelperRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Assign helper validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	helperID, err := uuid.Parse(req.HelperID)
	if err != nil {
		return fmt.Errorf("invalid helper ID format %s: %w", req.HelperID, err)
	}

	helper, err := s.repo.User.FindByID(ctx, helperID)
	if err != nil {
		return fmt.Errorf("look up helper: %w", err)
	}
	if helper == nil || helper.Role != entity.RoleHelper || !helper.IsActive {
		return fmt.Errorf("helper %s: %w", req.HelperID, ErrNotFound)
	}

	booking, err := s.loadJobPost(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.checkClaimable(booking); err != nil {
		return err
	}

	if err := s.checkHelperFree(ctx, helperID, booking); err != nil {
		return err
	}

	if err := s.claim(ctx, booking, helperID); err != nil {
		return err
	}

	s.notifier.notifyBooking(ctx, booking.CustomerID,
		"Helper assigned",
		fmt.Sprintf("A helper has been assigned to your job post %s", booking.OrderID),
		booking.ID)
	s.notifier.notifyBooking(ctx, helperID,
		"Job assigned",
		fmt.Sprintf("You have been assigned to booking %s", booking.OrderID),
		booking.ID)

	s.log.Info("Helper assigned to job post",
		zap.String("booking_id", booking.ID.String()),
		zap.String("helper_id", helperID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}

// ==================== HELPERS ====================

func (s *jobPostService) loadJobPost(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	return booking, nil
}

func (s *jobPostService) checkClaimable(booking *entity.Booking) error {
	if booking.HelperID != nil || !booking.IsJobPost {
		return ErrAlreadyClaimed
	}
	if booking.Status.IsTerminal() {
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
	}
	if booking.ApprovalStatus != entity.ApprovalStatusApproved {
		return ErrNotApproved
	}
	return nil
}

func (s *jobPostService) checkHelperFree(ctx context.Context, helperID uuid.UUID, booking *entity.Booking) error {
	existing, err := s.repo.Booking.FindActiveForHelper(ctx, helperID, booking.ID)
	if err != nil {
		return fmt.Errorf("check helper schedule: %w", err)
	}
	if hasConflict(existing, window{booking.StartDate, booking.EndDate, booking.ShiftStart, booking.ShiftEnd}) {
		return ErrScheduleConflict
	}
	return nil
}

// claim runs the compare-and-swap that makes the first caller the one and
// only winner. Losers reload the row to report why the claim failed.
func (s *jobPostService) claim(ctx context.Context, booking *entity.Booking, helperID uuid.UUID) error {
	claimed, err := s.repo.Booking.ClaimJobPost(ctx, booking.ID, helperID)
	if err != nil {
		return fmt.Errorf("claim job post: %w", err)
	}
	if claimed {
		return nil
	}

	current, err := s.repo.Booking.FindByID(ctx, booking.ID)
	if err != nil || current == nil {
		return ErrAlreadyClaimed
	}
	switch {
	case current.HelperID != nil:
		return ErrAlreadyClaimed
	case current.ApprovalStatus != entity.ApprovalStatusApproved:
		return ErrNotApproved
	case current.Status.IsTerminal():
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, current.Status)
	default:
		return ErrAlreadyClaimed
	}
}

func (s *jobPostService) serviceName(ctx context.Context, serviceID uuid.UUID) string {
	svc, _ := s.repo.Service.FindByID(ctx, serviceID)
	if svc == nil {
		return ""
	}
	return svc.Name
}
