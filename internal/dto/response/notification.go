package response

import (
	"time"

	"service-marketplace/internal/data/entity"
)

type NotificationResponse struct {
	ID         string                  `json:"id"`
	Kind       entity.NotificationKind `json:"kind"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	ActionLink *string                 `json:"action_link,omitempty"`
	Read       bool                    `json:"read"`
	ReadAt     *time.Time              `json:"read_at,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

func NotificationToResponse(notification *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         notification.ID.String(),
		Kind:       notification.Kind,
		Title:      notification.Title,
		Message:    notification.Message,
		ActionLink: notification.ActionLink,
		Read:       notification.Read,
		ReadAt:     notification.ReadAt,
		CreatedAt:  notification.CreatedAt,
	}
}
