package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that hold a provider's time slot.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInProgress,
}

func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type BookingModality string

const (
	ModalityInPerson BookingModality = "in_person"
	ModalityOnline   BookingModality = "online"
)

type Booking struct {
	Base
	ClientID       uuid.UUID       `db:"client_id"`
	ProviderID     uuid.UUID       `db:"provider_id"`
	ServiceID      uuid.UUID       `db:"service_id"`
	ScheduledAt    time.Time       `db:"scheduled_at"`
	Status         BookingStatus   `db:"status"`
	Notes          *string         `db:"notes"`
	Modality       BookingModality `db:"modality"`
	ServiceAddress *string         `db:"service_address"`
}

// BookingsPerDay is a daily scheduling aggregate for the admin dashboard.
type BookingsPerDay struct {
	Day   time.Time
	Count int64
}
