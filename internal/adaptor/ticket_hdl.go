package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

func callerRole(r *http.Request) entity.UserRole {
	role, _ := utils.GetRoleFromContext(r.Context())
	return entity.UserRole(role)
}

// Open handles POST /api/tickets (protected)
func (h *TicketHandler) Open(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, err := h.service.Open(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "open ticket")
		return
	}

	utils.ResponseCreated(w, "success", ticket)
}

// ListMine handles GET /api/tickets (protected)
func (h *TicketHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tickets, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// Get handles GET /api/tickets/{id} (protected)
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	ticket, err := h.service.Get(r.Context(), userID, callerRole(r), ticketID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// Reply handles POST /api/tickets/{id}/replies (protected)
func (h *TicketHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	var req request.ReplyTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reply, err := h.service.Reply(r.Context(), userID, callerRole(r), ticketID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reply ticket")
		return
	}

	utils.ResponseCreated(w, "success", reply)
}

// Close handles PUT /api/tickets/{id}/close (protected)
func (h *TicketHandler) Close(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ticketID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	if err := h.service.Close(r.Context(), userID, callerRole(r), ticketID); err != nil {
		handleServiceError(w, h.log, err, "close ticket")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Update handles PUT /api/admin/tickets/{id} (admin)
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid ticket ID", nil)
		return
	}

	var req request.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ticket, err := h.service.Update(r.Context(), ticketID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// ListAll handles GET /api/admin/tickets (admin)
func (h *TicketHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListTicketsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		Status: query.Get("status"),
	}

	tickets, err := h.service.ListAll(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list all tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}
