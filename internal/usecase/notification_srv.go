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

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

// notify inserts an in-app notification after the triggering operation has
// committed. Failures are logged and swallowed; a lost notification never
// fails a booking, payment or rating.
func notify(ctx context.Context, repo *repository.Repository, log *zap.Logger, userID uuid.UUID, kind entity.NotificationKind, title, message string, actionLink *string) {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now().UTC()},
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Message:    message,
		ActionLink: actionLink,
	}

	if err := repo.Notification.Create(ctx, notification); err != nil {
		log.Warn("Failed to dispatch notification",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("kind", string(kind)),
		)
	}
}

// List returns a page of notifications, newest first, and marks the returned
// page as read.
func (s *notificationService) List(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	notifications, err := s.repo.Notification.ListByUser(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Notification.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]response.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		items = append(items, response.NotificationToResponse(notification))

		if !notification.Read {
			if err := s.repo.Notification.MarkRead(ctx, notification.ID, now); err != nil {
				s.log.Warn("Failed to mark notification read",
					zap.Error(err),
					zap.String("notification_id", notification.ID.String()),
				)
			}
		}
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Notification.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.repo.Notification.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperrors.New(apperrors.NotFound, "notification not found")
	}
	if notification.UserID != userID {
		return apperrors.New(apperrors.Unauthorized, "notification belongs to another user")
	}

	return s.repo.Notification.MarkRead(ctx, notificationID, time.Now().UTC())
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Notification.MarkAllRead(ctx, userID, time.Now().UTC())
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.repo.Notification.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperrors.New(apperrors.NotFound, "notification not found")
	}
	if notification.UserID != userID {
		return apperrors.New(apperrors.Unauthorized, "notification belongs to another user")
	}

	return s.repo.Notification.Delete(ctx, notificationID)
}
