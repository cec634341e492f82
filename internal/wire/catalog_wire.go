package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, repo *repository.Repository, log *zap.Logger) {
	// Public discovery
	r.Get("/api/categories", catalogHandler.ListCategories)
	r.Get("/api/providers", catalogHandler.SearchProviders)
	r.Get("/api/providers/{id}", catalogHandler.GetProvider)
	r.Get("/api/providers/{id}/services", catalogHandler.ListProviderServices)

	// Provider service management
	r.Route("/api/services", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", catalogHandler.CreateService)
		r.Put("/{id}", catalogHandler.UpdateService)
		r.Delete("/{id}", catalogHandler.DeactivateService)
	})
}
