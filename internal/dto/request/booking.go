package request

// CreateBookingRequest creates either a direct booking (HelperID set, the
// chosen helper is conflict-checked) or a job post (HelperID empty, goes to
// admin approval before helpers can claim it).
type CreateBookingRequest struct {
	ServiceID  string   `json:"service_id" validate:"required,uuid4"`
	HelperID   *string  `json:"helper_id,omitempty" validate:"omitempty,uuid4"`
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	ShiftStart string   `json:"shift_start" validate:"required,datetime=15:04"`
	ShiftEnd   string   `json:"shift_end" validate:"required,datetime=15:04"`
	Quantity   *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Notes      *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type UpdateScheduleRequest struct {
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	ShiftStart string   `json:"shift_start" validate:"required,datetime=15:04"`
	ShiftEnd   string   `json:"shift_end" validate:"required,datetime=15:04"`
	Quantity   *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Notes      *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type AssignHelperRequest struct {
	HelperID string `json:"helper_id" validate:"required,uuid4"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type RejectBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
