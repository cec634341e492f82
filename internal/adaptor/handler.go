package adaptor

import (
	"errors"
	"net/http"

	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/apperrors"
	"service-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
	Rating       *RatingHandler
	Chat         *ChatHandler
	Ticket       *TicketHandler
	Admin        *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Rating:       NewRatingHandler(service.Rating, log),
		Chat:         NewChatHandler(service.Chat, log),
		Ticket:       NewTicketHandler(service.Ticket, log),
		Admin:        NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps usecase error kinds onto HTTP statuses. Callers on
// protected routes are already authenticated, so Unauthorized here means the
// resource belongs to someone else.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	message := errorMessage(err)

	switch apperrors.KindOf(err) {
	case apperrors.Validation, apperrors.InsufficientFunds:
		utils.ResponseBadRequest(w, message, nil)
	case apperrors.Unauthorized:
		utils.ResponseForbidden(w, message)
	case apperrors.NotFound:
		utils.ResponseNotFound(w, message)
	case apperrors.Conflict:
		utils.ResponseConflict(w, message)
	case apperrors.InvalidState:
		utils.ResponseUnprocessable(w, message)
	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func errorMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// urlUUID reads a chi URL parameter as a UUID.
func urlUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
