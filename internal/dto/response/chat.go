package response

import (
	"time"

	"service-marketplace/internal/data/entity"
)

type ConversationResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	ClientID      string    `json:"client_id"`
	ProviderID    string    `json:"provider_id"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type MessageResponse struct {
	ID             string             `json:"id"`
	ConversationID string             `json:"conversation_id"`
	SenderID       string             `json:"sender_id"`
	Body           string             `json:"body"`
	Kind           entity.MessageKind `json:"kind"`
	Read           bool               `json:"read"`
	CreatedAt      time.Time          `json:"created_at"`
}

func ConversationToResponse(conversation *entity.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            conversation.ID.String(),
		BookingID:     conversation.BookingID.String(),
		ClientID:      conversation.ClientID.String(),
		ProviderID:    conversation.ProviderUserID.String(),
		LastMessageAt: conversation.LastMessageAt,
		CreatedAt:     conversation.CreatedAt,
	}
}

func MessageToResponse(message *entity.Message) MessageResponse {
	return MessageResponse{
		ID:             message.ID.String(),
		ConversationID: message.ConversationID.String(),
		SenderID:       message.SenderID.String(),
		Body:           message.Body,
		Kind:           message.Kind,
		Read:           message.Read,
		CreatedAt:      message.CreatedAt,
	}
}
