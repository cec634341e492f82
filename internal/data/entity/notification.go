package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationBooking NotificationKind = "booking"
	NotificationMessage NotificationKind = "message"
	NotificationPayment NotificationKind = "payment"
	NotificationRating  NotificationKind = "rating"
	NotificationSystem  NotificationKind = "system"
)

type Notification struct {
	BaseSimple
	UserID     uuid.UUID        `db:"user_id"`
	Kind       NotificationKind `db:"kind"`
	Title      string           `db:"title"`
	Message    string           `db:"message"`
	ActionLink *string          `db:"action_link"`
	Read       bool             `db:"read"`
	ReadAt     *time.Time       `db:"read_at"`
}
