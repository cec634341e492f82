package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Stats handles GET /api/admin/stats (admin)
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlatformStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "platform stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// WeeklyBookings handles GET /api/admin/stats/bookings-week (admin)
func (h *AdminHandler) WeeklyBookings(w http.ResponseWriter, r *http.Request) {
	weekly, err := h.service.WeeklyBookings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "weekly bookings")
		return
	}

	utils.ResponseSuccess(w, "success", weekly)
}

// CreateUser handles POST /api/admin/users (admin)
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.AdminCreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "success", user)
}
