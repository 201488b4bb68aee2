package usecase

import (
	"context"
	"sync"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Guarded mutations take the same mutex, so the
// compare-and-set semantics of the SQL layer hold under the race detector.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) put(b *entity.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *b
	f.bookings[b.ID] = &clone
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.put(booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	list, _ := f.FindByCustomerID(ctx, customerID, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeBookingRepo) FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.HelperID != nil && *b.HelperID == helperID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error) {
	list, _ := f.FindByHelperID(ctx, helperID, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeBookingRepo) FindOpenJobPosts(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.IsJobPost && b.HelperID == nil &&
			b.ApprovalStatus == entity.ApprovalStatusApproved &&
			b.Status == entity.BookingStatusPending {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountOpenJobPosts(ctx context.Context) (int64, error) {
	list, _ := f.FindOpenJobPosts(ctx, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeBookingRepo) FindActiveForHelper(ctx context.Context, helperID uuid.UUID, excludeID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ID == excludeID {
			continue
		}
		if b.HelperID == nil || *b.HelperID != helperID {
			continue
		}
		if b.Status != entity.BookingStatusPending && b.Status != entity.BookingStatusConfirmed {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeBookingRepo) FindExpiredPending(ctx context.Context, date time.Time, elapsedMinutes int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status != entity.BookingStatusPending {
			continue
		}
		if b.StartDate.Before(date) || (b.StartDate.Equal(date) && b.ShiftStart < elapsedMinutes) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateSchedule(ctx context.Context, booking *entity.Booking) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[booking.ID]
	if !ok || b.Status.IsTerminal() {
		return false, nil
	}
	b.StartDate = booking.StartDate
	b.EndDate = booking.EndDate
	b.ShiftStart = booking.ShiftStart
	b.ShiftEnd = booking.ShiftEnd
	b.Quantity = booking.Quantity
	b.TotalPrice = booking.TotalPrice
	b.Notes = booking.Notes
	return true, nil
}

func (f *fakeBookingRepo) ConfirmFrom(ctx context.Context, id uuid.UUID, from entity.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = entity.BookingStatusConfirmed
	return true, nil
}

func (f *fakeBookingRepo) CancelWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || (b.Status != entity.BookingStatusPending && b.Status != entity.BookingStatusConfirmed) {
		return false, nil
	}
	b.Status = entity.BookingStatusCancelled
	if reason != nil {
		b.RejectionReason = reason
	}
	return true, nil
}

func (f *fakeBookingRepo) RejectWithReason(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusRejected
	if reason != nil {
		b.RejectionReason = reason
	}
	return true, nil
}

func (f *fakeBookingRepo) ClaimJobPost(ctx context.Context, id, helperID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || !b.IsJobPost || b.HelperID != nil ||
		b.ApprovalStatus != entity.ApprovalStatusApproved ||
		b.Status != entity.BookingStatusPending {
		return false, nil
	}
	hid := helperID
	b.HelperID = &hid
	b.IsJobPost = false
	b.Status = entity.BookingStatusConfirmed
	return true, nil
}

func (f *fakeBookingRepo) ApproveJobPost(ctx context.Context, id, adminID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || !b.IsJobPost || b.ApprovalStatus != entity.ApprovalStatusPending {
		return false, nil
	}
	b.ApprovalStatus = entity.ApprovalStatusApproved
	aid := adminID
	b.ApprovedBy = &aid
	now := time.Now()
	b.ApprovalDate = &now
	return true, nil
}

func (f *fakeBookingRepo) RejectJobPost(ctx context.Context, id uuid.UUID, reason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || !b.IsJobPost ||
		b.ApprovalStatus != entity.ApprovalStatusPending ||
		b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.ApprovalStatus = entity.ApprovalStatusRejected
	b.Status = entity.BookingStatusRejected
	if reason != nil {
		b.RejectionReason = reason
	}
	return true, nil
}

func (f *fakeBookingRepo) SetPartyConfirmed(ctx context.Context, id uuid.UUID, helperSide bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != entity.BookingStatusConfirmed {
		return false, nil
	}
	if helperSide {
		b.HelperConfirmed = true
	} else {
		b.CustomerConfirmed = true
	}
	return true, nil
}

func (f *fakeBookingRepo) CompleteIfBothConfirmed(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.Status != entity.BookingStatusConfirmed || !b.CustomerConfirmed || !b.HelperConfirmed {
		return false, nil
	}
	b.Status = entity.BookingStatusCompleted
	return true, nil
}

func (f *fakeBookingRepo) SetPaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	b.PaymentStatus = status
	return true, nil
}

type fakeRatingRepo struct {
	mu       sync.Mutex
	bookings *fakeBookingRepo
	users    *fakeUserRepo
	ratings  map[uuid.UUID]*entity.Rating
}

func newFakeRatingRepo(bookings *fakeBookingRepo, users *fakeUserRepo) *fakeRatingRepo {
	return &fakeRatingRepo{
		bookings: bookings,
		users:    users,
		ratings:  make(map[uuid.UUID]*entity.Rating),
	}
}

func (f *fakeRatingRepo) CreateWithAggregate(ctx context.Context, rating *entity.Rating) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bookings.mu.Lock()
	b, ok := f.bookings.bookings[rating.BookingID]
	if !ok || b.IsRated || b.Status != entity.BookingStatusCompleted {
		f.bookings.mu.Unlock()
		return false, nil
	}
	b.IsRated = true
	f.bookings.mu.Unlock()

	clone := *rating
	f.ratings[rating.ID] = &clone

	f.users.mu.Lock()
	if helper, ok := f.users.users[rating.HelperID]; ok {
		total := helper.RatingAverage*float64(helper.RatingCount) + float64(rating.Score)
		helper.RatingCount++
		helper.RatingAverage = total / float64(helper.RatingCount)
	}
	f.users.mu.Unlock()

	return true, nil
}

func (f *fakeRatingRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.BookingID == bookingID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Rating
	for _, r := range f.ratings {
		if r.HelperID == helperID {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error) {
	list, _ := f.FindByHelperID(ctx, helperID, 0, 0)
	return int64(len(list)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) put(u *entity.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *u
	f.users[u.ID] = &clone
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.put(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, mustChange bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
		u.MustChangePassword = mustChange
	}
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) put(s *entity.Service) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *s
	f.services[s.ID] = &clone
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (f *fakeServiceRepo) FindAllActive(ctx context.Context) ([]*entity.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Service
	for _, s := range f.services {
		if s.IsActive {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.sessions[session.ID] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Token.String() == token && s.RevokedAt == nil && s.ExpiresAt.After(time.Now()) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, s := range f.sessions {
		if s.Token.String() == token {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *notification
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// newTestRepo wires all fakes into a Repository for service-level tests.
func newTestRepo() (*repository.Repository, *fakeBookingRepo, *fakeUserRepo, *fakeServiceRepo) {
	bookings := newFakeBookingRepo()
	users := newFakeUserRepo()
	services := newFakeServiceRepo()

	repo := &repository.Repository{
		User:         users,
		Session:      newFakeSessionRepo(),
		Service:      services,
		Booking:      bookings,
		Rating:       newFakeRatingRepo(bookings, users),
		Notification: &fakeNotificationRepo{},
	}
	return repo, bookings, users, services
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
