package response

// GuestBookingResponse is the one place a generated secret leaves the system:
// the temporary password is returned exactly once for first login.
type GuestBookingResponse struct {
	Booking      BookingResponse `json:"booking"`
	User         UserResponse    `json:"user"`
	TempPassword string          `json:"temp_password"`
}
