package request

// GuestBookingRequest provisions an account and a booking in one call. The
// captcha token is the only proof the caller is human.
type GuestBookingRequest struct {
	CaptchaToken string  `json:"captcha_token" validate:"required"`
	Username     string  `json:"username" validate:"required,min=3,max=50"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`

	Booking CreateBookingRequest `json:"booking" validate:"required"`
}
