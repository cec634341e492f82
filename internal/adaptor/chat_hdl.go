package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/dto/response"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type ChatHandler struct {
	service usecase.ChatService
	log     *zap.Logger
}

func NewChatHandler(service usecase.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With(zap.String("handler", "chat")),
	}
}

// StartConversation handles POST /api/bookings/{id}/conversation (protected)
func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	conversation, err := h.service.StartConversation(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "start conversation")
		return
	}

	utils.ResponseSuccess(w, "success", conversation)
}

// ListConversations handles GET /api/conversations (protected)
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list conversations")
		return
	}

	utils.ResponseSuccess(w, "success", conversations)
}

// ListMessages handles GET /api/conversations/{id}/messages (protected)
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	conversationID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 50),
	}

	messages, err := h.service.ListMessages(r.Context(), userID, conversationID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list messages")
		return
	}

	utils.ResponseSuccess(w, "success", messages)
}

// SendMessage handles POST /api/conversations/{id}/messages (protected)
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	conversationID, ok := urlUUID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid conversation ID", nil)
		return
	}

	var req request.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, conversationID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "send message")
		return
	}

	utils.ResponseCreated(w, "success", message)
}

// UnreadCount handles GET /api/conversations/unread-count (protected)
func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "chat unread count")
		return
	}

	utils.ResponseSuccess(w, "success", response.UnreadCountResponse{Unread: count})
}
