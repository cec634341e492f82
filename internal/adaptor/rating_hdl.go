package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// Rate handles POST /api/bookings/{id}/rating (protected, client)
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.BookingID = chi.URLParam(r, "id")

	rating, err := h.service.Rate(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate booking")
		return
	}

	utils.ResponseCreated(w, "success", rating)
}

// Reply handles POST /api/ratings/{id}/reply (protected, provider)
func (h *RatingHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ratingID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid rating ID", nil)
		return
	}

	var req request.ReplyRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Reply(r.Context(), userID, ratingID, &req); err != nil {
		handleServiceError(w, h.log, err, "reply rating")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ProviderStats handles GET /api/providers/{id}/rating-stats (public)
func (h *RatingHandler) ProviderStats(w http.ResponseWriter, r *http.Request) {
	providerID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid provider ID", nil)
		return
	}

	stats, err := h.service.ProviderStats(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, h.log, err, "provider stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// ListMine handles GET /api/ratings (protected). Providers see ratings they
// received, clients see ratings they wrote.
func (h *RatingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ratings, err := h.service.ListForClient(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// ListForProvider handles GET /api/providers/{id}/ratings (public)
func (h *RatingHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid provider ID", nil)
		return
	}

	ratings, err := h.service.ListForProvider(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, h.log, err, "list provider ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}
