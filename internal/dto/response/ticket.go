package response

import (
	"time"

	"service-marketplace/internal/data/entity"
)

type TicketResponse struct {
	ID          string                `json:"id"`
	UserID      string                `json:"user_id"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Category    *string               `json:"category,omitempty"`
	Status      entity.TicketStatus   `json:"status"`
	Priority    entity.TicketPriority `json:"priority"`
	Resolution  *string               `json:"resolution,omitempty"`
	ResolvedAt  *time.Time            `json:"resolved_at,omitempty"`
	Replies     []TicketReplyResponse `json:"replies,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type TicketReplyResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func TicketToResponse(ticket *entity.Ticket, replies []*entity.TicketReply) TicketResponse {
	resp := TicketResponse{
		ID:          ticket.ID.String(),
		UserID:      ticket.UserID.String(),
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Category:    ticket.Category,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		Resolution:  ticket.Resolution,
		ResolvedAt:  ticket.ResolvedAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}

	for _, reply := range replies {
		resp.Replies = append(resp.Replies, TicketReplyToResponse(reply))
	}

	return resp
}

func TicketReplyToResponse(reply *entity.TicketReply) TicketReplyResponse {
	return TicketReplyResponse{
		ID:        reply.ID.String(),
		UserID:    reply.UserID.String(),
		Body:      reply.Body,
		CreatedAt: reply.CreatedAt,
	}
}
