package request

type CreateTicketRequest struct {
	Subject     string  `json:"subject" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required,min=10,max=5000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type ReplyTicketRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

type UpdateTicketRequest struct {
	Status     string  `json:"status" validate:"omitempty,oneof=open in_progress answered closed"`
	Priority   string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Resolution *string `json:"resolution,omitempty" validate:"omitempty,max=5000"`
}

type ListTicketsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=open in_progress answered closed"`
}
