package repository

import (
	"context"
	"fmt"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Ticket, error)
	ListByStatus(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error)
	CountByStatus(ctx context.Context, status entity.TicketStatus) (int64, error)
	CountOpenByPriority(ctx context.Context, priority entity.TicketPriority) (int64, error)
}

type TicketReplyRepository interface {
	Create(ctx context.Context, reply *entity.TicketReply) error
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*entity.TicketReply, error)
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, user_id, subject, description, category, status, priority, resolution, resolved_at, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, subject, description, category, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.Subject,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.Priority,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("user_id", ticket.UserID.String()),
		)
		return fmt.Errorf("create ticket for user %s: %w", ticket.UserID.String(), err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := r.scanTicket(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET status = $2, priority = $3, resolution = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.Status,
		ticket.Priority,
		ticket.Resolution,
		ticket.ResolvedAt,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("update ticket %s: %w", ticket.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s not found", ticket.ID.String())
	}

	return nil
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list tickets by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list tickets for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.collectTickets(rows)
}

func (r *ticketRepository) ListByStatus(ctx context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.log.Error("Failed to list tickets by status",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("list tickets by status %q: %w", status, err)
	}
	defer rows.Close()

	return r.collectTickets(rows)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, status entity.TicketStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE ($1 = '' OR status = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("count tickets by status %q: %w", status, err)
	}

	return count, nil
}

func (r *ticketRepository) scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Category,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Resolution,
		&ticket.ResolvedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) collectTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

type ticketReplyRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketReplyRepository(db database.Querier, log *zap.Logger) TicketReplyRepository {
	return &ticketReplyRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket_reply")),
	}
}

func (r *ticketReplyRepository) Create(ctx context.Context, reply *entity.TicketReply) error {
	query := `
		INSERT INTO ticket_replies (id, ticket_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		reply.ID,
		reply.TicketID,
		reply.UserID,
		reply.Body,
		reply.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket reply",
			zap.Error(err),
			zap.String("ticket_id", reply.TicketID.String()),
		)
		return fmt.Errorf("create reply on ticket %s: %w", reply.TicketID.String(), err)
	}

	return nil
}

func (r *ticketReplyRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*entity.TicketReply, error) {
	query := `
		SELECT id, ticket_id, user_id, body, created_at
		FROM ticket_replies
		WHERE ticket_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		r.log.Error("Failed to list ticket replies",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return nil, fmt.Errorf("list replies for ticket %s: %w", ticketID.String(), err)
	}
	defer rows.Close()

	var replies []*entity.TicketReply
	for rows.Next() {
		var reply entity.TicketReply
		err := rows.Scan(
			&reply.ID,
			&reply.TicketID,
			&reply.UserID,
			&reply.Body,
			&reply.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket reply row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket reply row: %w", err)
		}
		replies = append(replies, &reply)
	}

	return replies, nil
}

func (r *ticketRepository) CountOpenByPriority(ctx context.Context, priority entity.TicketPriority) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE status = $1 AND priority = $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, entity.TicketOpen, priority).Scan(&count); err != nil {
		r.log.Error("Failed to count open tickets by priority",
			zap.Error(err),
			zap.String("priority", string(priority)),
		)
		return 0, fmt.Errorf("count open %s tickets: %w", priority, err)
	}

	return count, nil
}
