package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, repo *repository.Repository, log *zap.Logger) {
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/process", paymentHandler.Process)
		r.Post("/withdraw", paymentHandler.Withdraw)
		r.Get("/transactions", paymentHandler.Transactions)
		r.Put("/fee-rate", paymentHandler.SetFeeRate)
	})
}
