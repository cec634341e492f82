package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireChat(r chi.Router, chatHandler *adaptor.ChatHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/conversations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/", chatHandler.ListConversations)
		r.Get("/unread-count", chatHandler.UnreadCount)
		r.Get("/{id}/messages", chatHandler.ListMessages)
		r.Post("/{id}/messages", chatHandler.SendMessage)
	})
}
