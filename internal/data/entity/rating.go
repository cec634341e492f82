package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is authored by the client of a completed booking, at most one per
// booking (unique index).
type Rating struct {
	BaseSimple
	BookingID     uuid.UUID  `db:"booking_id"`
	ClientID      uuid.UUID  `db:"client_id"`
	ProviderID    uuid.UUID  `db:"provider_id"`
	Score         int        `db:"score"` // 1-5
	Comment       *string    `db:"comment"`
	Anonymous     bool       `db:"anonymous"`
	ProviderReply *string    `db:"provider_reply"`
	RepliedAt     *time.Time `db:"replied_at"`
}
