package repository

import (
	"context"
	"fmt"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.Message, error)
	CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error)
	// MarkConversationRead marks messages sent by the other party as read.
	MarkConversationRead(ctx context.Context, conversationID, readerID uuid.UUID) error
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMessageRepository(db database.Querier, log *zap.Logger) MessageRepository {
	return &messageRepository{
		db:  db,
		log: log.With(zap.String("repository", "message")),
	}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, body, kind, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Body,
		message.Kind,
		message.Read,
		message.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create message",
			zap.Error(err),
			zap.String("conversation_id", message.ConversationID.String()),
		)
		return fmt.Errorf("create message in conversation %s: %w", message.ConversationID.String(), err)
	}

	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, body, kind, read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list messages",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return nil, fmt.Errorf("list messages in conversation %s: %w", conversationID.String(), err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var message entity.Message
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.SenderID,
			&message.Body,
			&message.Kind,
			&message.Read,
			&message.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan message row", zap.Error(err))
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *messageRepository) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, conversationID).Scan(&count); err != nil {
		r.log.Error("Failed to count messages",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return 0, fmt.Errorf("count messages in conversation %s: %w", conversationID.String(), err)
	}

	return count, nil
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	query := `
		UPDATE messages
		SET read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND read = FALSE
	`

	if _, err := r.db.Exec(ctx, query, conversationID, readerID); err != nil {
		r.log.Error("Failed to mark conversation read",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return fmt.Errorf("mark conversation %s read: %w", conversationID.String(), err)
	}

	return nil
}

func (r *messageRepository) CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.client_id = $1 OR c.provider_user_id = $1)
		  AND m.sender_id <> $1
		  AND m.read = FALSE
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count unread messages",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count unread messages for user %s: %w", userID.String(), err)
	}

	return count, nil
}
