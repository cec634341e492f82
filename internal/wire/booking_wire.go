package wire

import (
	"service-marketplace/internal/adaptor"
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	ratingHandler *adaptor.RatingHandler,
	chatHandler *adaptor.ChatHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", bookingHandler.Create)
		r.Get("/", bookingHandler.List)
		r.Get("/{id}", bookingHandler.GetByID)

		// Lifecycle transitions
		r.Post("/{id}/confirm", bookingHandler.Confirm)
		r.Post("/{id}/decline", bookingHandler.Decline)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
		r.Post("/{id}/complete", bookingHandler.Complete)

		// Booking-scoped resources
		r.Get("/{id}/payment", paymentHandler.GetBookingPayment)
		r.Post("/{id}/rating", ratingHandler.Rate)
		r.Post("/{id}/conversation", chatHandler.StartConversation)
	})

	// Public availability lookup
	r.Get("/api/providers/{id}/availability", bookingHandler.Availability)
}
