package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(r chi.Router, ratingHandler *adaptor.RatingHandler, repo *repository.Repository, log *zap.Logger) {
	// Public rating views
	r.Get("/api/providers/{id}/rating-stats", ratingHandler.ProviderStats)
	r.Get("/api/providers/{id}/ratings", ratingHandler.ListForProvider)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/api/ratings", ratingHandler.ListMine)
		r.Post("/api/ratings/{id}/reply", ratingHandler.Reply)
	})
}
