package usecase

import (
	"context"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/data/repository"
	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/dto/response"
	"service-marketplace/pkg/apperrors"
	"service-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatService interface {
	StartConversation(ctx context.Context, userID, bookingID uuid.UUID) (*response.ConversationResponse, error)
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *request.SendMessageRequest) (*response.MessageResponse, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]response.ConversationResponse, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type chatService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewChatService(repo *repository.Repository, log *zap.Logger) ChatService {
	return &chatService{
		repo: repo,
		log:  log.With(zap.String("service", "chat")),
	}
}

// StartConversation returns the booking's conversation, creating it on first
// contact. Only the booking's client or provider may open it.
func (s *chatService) StartConversation(ctx context.Context, userID, bookingID uuid.UUID) (*response.ConversationResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.NotFound, "booking not found")
	}

	provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.NotFound, "provider not found")
	}
	if booking.ClientID != userID && provider.UserID != userID {
		return nil, apperrors.New(apperrors.Unauthorized, "booking belongs to another user")
	}

	existing, err := s.repo.Conversation.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp := response.ConversationToResponse(existing)
		return &resp, nil
	}

	now := time.Now().UTC()
	conversation := &entity.Conversation{
		BaseSimple:     entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now},
		BookingID:      booking.ID,
		ClientID:       booking.ClientID,
		ProviderUserID: provider.UserID,
		LastMessageAt:  now,
	}

	if err := s.repo.Conversation.Create(ctx, conversation); err != nil {
		return nil, err
	}

	resp := response.ConversationToResponse(conversation)
	return &resp, nil
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *request.SendMessageRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	conversation, err := s.conversationForParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	message := &entity.Message{
		BaseSimple:     entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now},
		ConversationID: conversation.ID,
		SenderID:       userID,
		Body:           req.Body,
		Kind:           entity.MessageText,
	}

	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		if err := r.Message.Create(ctx, message); err != nil {
			return err
		}
		return r.Conversation.TouchLastMessage(ctx, conversation.ID, now)
	})
	if err != nil {
		return nil, err
	}

	recipient := conversation.ClientID
	if userID == conversation.ClientID {
		recipient = conversation.ProviderUserID
	}

	link := bookingLink(conversation.BookingID)
	notify(ctx, s.repo, s.log, recipient, entity.NotificationMessage,
		"New message", req.Body, &link)

	resp := response.MessageToResponse(message)
	return &resp, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]response.ConversationResponse, error) {
	conversations, err := s.repo.Conversation.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		items = append(items, response.ConversationToResponse(conversation))
	}
	return items, nil
}

// ListMessages returns a page of messages oldest-first and marks the other
// party's messages as read.
func (s *chatService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error) {
	conversation, err := s.conversationForParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Message.ListByConversation(ctx, conversation.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Message.CountByConversation(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Message.MarkConversationRead(ctx, conversation.ID, userID); err != nil {
		s.log.Warn("Failed to mark conversation read",
			zap.Error(err),
			zap.String("conversation_id", conversation.ID.String()),
		)
	}

	items := make([]response.MessageResponse, 0, len(messages))
	for _, message := range messages {
		items = append(items, response.MessageToResponse(message))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *chatService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Message.CountUnreadForUser(ctx, userID)
}

func (s *chatService) conversationForParticipant(ctx context.Context, userID, conversationID uuid.UUID) (*entity.Conversation, error) {
	conversation, err := s.repo.Conversation.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperrors.New(apperrors.NotFound, "conversation not found")
	}
	if conversation.ClientID != userID && conversation.ProviderUserID != userID {
		return nil, apperrors.New(apperrors.Unauthorized, "conversation belongs to other users")
	}
	return conversation, nil
}
