package repository

import (
	"context"
	"fmt"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)
	TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error
}

type conversationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewConversationRepository(db database.Querier, log *zap.Logger) ConversationRepository {
	return &conversationRepository{
		db:  db,
		log: log.With(zap.String("repository", "conversation")),
	}
}

const conversationColumns = `id, booking_id, client_id, provider_user_id, last_message_at, created_at`

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	query := `
		INSERT INTO conversations (id, booking_id, client_id, provider_user_id, last_message_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		conversation.ID,
		conversation.BookingID,
		conversation.ClientID,
		conversation.ProviderUserID,
		conversation.LastMessageAt,
		conversation.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create conversation",
			zap.Error(err),
			zap.String("booking_id", conversation.BookingID.String()),
		)
		return fmt.Errorf("create conversation for booking %s: %w", conversation.BookingID.String(), err)
	}

	return nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conversation, err := r.scanConversation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find conversation by ID",
			zap.Error(err),
			zap.String("conversation_id", id.String()),
		)
		return nil, fmt.Errorf("find conversation by ID %s: %w", id.String(), err)
	}

	return conversation, nil
}

func (r *conversationRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE booking_id = $1`

	conversation, err := r.scanConversation(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find conversation by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find conversation by booking ID %s: %w", bookingID.String(), err)
	}

	return conversation, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE client_id = $1 OR provider_user_id = $1
		ORDER BY last_message_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list conversations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list conversations for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var conversations []*entity.Conversation
	for rows.Next() {
		conversation, err := r.scanConversation(rows)
		if err != nil {
			r.log.Error("Failed to scan conversation row", zap.Error(err))
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	return conversations, nil
}

func (r *conversationRepository) TouchLastMessage(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE conversations SET last_message_at = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to touch conversation",
			zap.Error(err),
			zap.String("conversation_id", id.String()),
		)
		return fmt.Errorf("touch conversation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s not found", id.String())
	}

	return nil
}

func (r *conversationRepository) scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := row.Scan(
		&conversation.ID,
		&conversation.BookingID,
		&conversation.ClientID,
		&conversation.ProviderUserID,
		&conversation.LastMessageAt,
		&conversation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}
