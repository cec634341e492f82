package adaptor

import (
	"encoding/json"
	"net/http"

	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/usecase"
	"service-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GetBookingPayment handles GET /api/bookings/{id}/payment (protected, client).
// Creates the pending payment on first access.
func (h *PaymentHandler) GetBookingPayment(w http.ResponseWriter, r *http.Request) {
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

	payment, err := h.service.EnsurePayment(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "ensure payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// Process handles POST /api/payments/process (protected, client)
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	payment, err := h.service.ProcessPayment(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// SetFeeRate handles PUT /api/payments/fee-rate (protected, provider)
func (h *PaymentHandler) SetFeeRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SetFeeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetFeeRate(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "set fee rate")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Withdraw handles POST /api/payments/withdraw (protected, provider)
func (h *PaymentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	entry, err := h.service.RequestWithdrawal(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "withdraw")
		return
	}

	utils.ResponseCreated(w, "success", entry)
}

// Transactions handles GET /api/payments/transactions (protected, provider)
func (h *PaymentHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	transactions, err := h.service.ListTransactions(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list transactions")
		return
	}

	utils.ResponseSuccess(w, "success", transactions)
}
