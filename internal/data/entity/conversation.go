package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is created lazily on first contact, one per booking.
type Conversation struct {
	BaseSimple
	BookingID      uuid.UUID `db:"booking_id"`
	ClientID       uuid.UUID `db:"client_id"`
	ProviderUserID uuid.UUID `db:"provider_user_id"`
	LastMessageAt  time.Time `db:"last_message_at"`
}

type MessageKind string

const (
	MessageText   MessageKind = "text"
	MessageSystem MessageKind = "system"
)

type Message struct {
	BaseSimple
	ConversationID uuid.UUID   `db:"conversation_id"`
	SenderID       uuid.UUID   `db:"sender_id"`
	Body           string      `db:"body"`
	Kind           MessageKind `db:"kind"`
	Read           bool        `db:"read"`
}
