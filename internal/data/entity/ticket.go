package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketAnswered   TicketStatus = "answered"
	TicketClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

type Ticket struct {
	Base
	UserID      uuid.UUID      `db:"user_id"`
	Subject     string         `db:"subject"`
	Description string         `db:"description"`
	Category    *string        `db:"category"`
	Status      TicketStatus   `db:"status"`
	Priority    TicketPriority `db:"priority"`
	Resolution  *string        `db:"resolution"`
	ResolvedAt  *time.Time     `db:"resolved_at"`
}

type TicketReply struct {
	BaseSimple
	TicketID uuid.UUID `db:"ticket_id"`
	UserID   uuid.UUID `db:"user_id"`
	Body     string    `db:"body"`
}
