package request

type StartConversationRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type ListMessagesRequest struct {
	PaginatedRequest
}
