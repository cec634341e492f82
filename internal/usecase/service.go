package usecase

import (
	"service-marketplace/internal/data/repository"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Catalog      CatalogService
	Booking      BookingService
	Payment      PaymentService
	Notification NotificationService
	Rating       RatingService
	Chat         ChatService
	Ticket       TicketService
	Admin        AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      NewBookingService(repo, log),
		Payment:      NewPaymentService(repo, config, log),
		Notification: NewNotificationService(repo, log),
		Rating:       NewRatingService(repo, log),
		Chat:         NewChatService(repo, log),
		Ticket:       NewTicketService(repo, log),
		Admin:        NewAdminService(repo, config, log),
	}
}
