package repository

import (
	"context"
	"fmt"

	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RatingRepository interface {
	// CreateWithAggregate inserts the rating, marks the booking rated and
	// folds the score into the helper's running average in one transaction.
	// Returns false without error when the booking was already rated.
	CreateWithAggregate(ctx context.Context, rating *entity.Rating) (bool, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error)
	FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error)
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) CreateWithAggregate(ctx context.Context, rating *entity.Rating) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin rating transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Marking the booking rated doubles as the duplicate guard: a second
	// transaction for the same booking finds is_rated already TRUE.
	markQuery := `
		UPDATE bookings
		SET is_rated = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT is_rated AND status = 'completed'
	`
	result, err := tx.Exec(ctx, markQuery, rating.BookingID)
	if err != nil {
		r.log.Error("Failed to mark booking rated",
			zap.Error(err),
			zap.String("booking_id", rating.BookingID.String()),
		)
		return false, fmt.Errorf("mark booking %s rated: %w", rating.BookingID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return false, nil
	}

	insertQuery := `
		INSERT INTO ratings (id, booking_id, customer_id, helper_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insertQuery,
		rating.ID,
		rating.BookingID,
		rating.CustomerID,
		rating.HelperID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert rating",
			zap.Error(err),
			zap.String("booking_id", rating.BookingID.String()),
		)
		return false, fmt.Errorf("insert rating for booking %s: %w", rating.BookingID.String(), err)
	}

	// newAvg = (oldAvg * oldCount + score) / (oldCount + 1), count and average
	// move together or not at all.
	aggregateQuery := `
		UPDATE users
		SET rating_average = (rating_average * rating_count + $2) / (rating_count + 1),
		    rating_count = rating_count + 1,
		    updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, aggregateQuery, rating.HelperID, rating.Score); err != nil {
		r.log.Error("Failed to update helper rating aggregate",
			zap.Error(err),
			zap.String("helper_id", rating.HelperID.String()),
		)
		return false, fmt.Errorf("update rating aggregate for helper %s: %w", rating.HelperID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit rating transaction: %w", err)
	}

	return true, nil
}

func (r *ratingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, booking_id, customer_id, helper_id, score, comment, created_at
		FROM ratings
		WHERE booking_id = $1
	`

	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&rating.ID,
		&rating.BookingID,
		&rating.CustomerID,
		&rating.HelperID,
		&rating.Score,
		&rating.Comment,
		&rating.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find rating by booking ID %s: %w", bookingID.String(), err)
	}

	return &rating, nil
}

func (r *ratingRepository) FindByHelperID(ctx context.Context, helperID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, booking_id, customer_id, helper_id, score, comment, created_at
		FROM ratings
		WHERE helper_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, helperID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find ratings by helper ID",
			zap.Error(err),
			zap.String("helper_id", helperID.String()),
		)
		return nil, fmt.Errorf("find ratings by helper ID %s: %w", helperID.String(), err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.BookingID,
			&rating.CustomerID,
			&rating.HelperID,
			&rating.Score,
			&rating.Comment,
			&rating.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}

func (r *ratingRepository) CountByHelperID(ctx context.Context, helperID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE helper_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, helperID).Scan(&count); err != nil {
		r.log.Error("Failed to count ratings by helper ID",
			zap.Error(err),
			zap.String("helper_id", helperID.String()),
		)
		return 0, fmt.Errorf("count ratings by helper ID %s: %w", helperID.String(), err)
	}

	return count, nil
}
