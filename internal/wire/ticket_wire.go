package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", ticketHandler.Open)
		r.Get("/", ticketHandler.ListMine)
		r.Get("/{id}", ticketHandler.Get)
		r.Post("/{id}/replies", ticketHandler.Reply)
		r.Put("/{id}/close", ticketHandler.Close)
	})

	// Staff view over every ticket
	r.Route("/api/admin/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Get("/", ticketHandler.ListAll)
		r.Put("/{id}", ticketHandler.Update)
	})
}
