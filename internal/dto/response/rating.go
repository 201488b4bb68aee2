package response

import (
	"time"

	"homecare-booking/internal/data/entity"
)

type RatingResponse struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	CustomerName string    `json:"customer_name,omitempty"`
	Score        int       `json:"score"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type HelperRatingSummary struct {
	HelperID      string  `json:"helper_id"`
	HelperName    string  `json:"helper_name"`
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`
}

func RatingToResponse(rating *entity.Rating, customerName string) RatingResponse {
	return RatingResponse{
		ID:           rating.ID.String(),
		BookingID:    rating.BookingID.String(),
		CustomerName: customerName,
		Score:        rating.Score,
		Comment:      rating.Comment,
		CreatedAt:    rating.CreatedAt,
	}
}
