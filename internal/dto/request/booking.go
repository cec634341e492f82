package request

type CreateBookingRequest struct {
	ServiceID      string  `json:"service_id" validate:"required,uuid4"`
	ScheduledAt    string  `json:"scheduled_at" validate:"required"` // RFC 3339
	Modality       string  `json:"modality" validate:"required,oneof=in_person online"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ServiceAddress *string `json:"service_address,omitempty" validate:"omitempty,max=255"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type DeclineBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
}
