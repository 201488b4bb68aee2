package response

import (
	"time"

	"homecare-booking/internal/data/entity"
)

type AuthResponse struct {
	User    UserResponse     `json:"user"`
	Session *SessionResponse `json:"session,omitempty"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID                 string          `json:"id"`
	Username           string          `json:"username"`
	Email              string          `json:"email"`
	Phone              *string         `json:"phone,omitempty"`
	Role               entity.UserRole `json:"role"`
	RatingAverage      float64         `json:"rating_average"`
	RatingCount        int             `json:"rating_count"`
	MustChangePassword bool            `json:"must_change_password"`
	CreatedAt          time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		RatingAverage:      user.RatingAverage,
		RatingCount:        user.RatingCount,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}
