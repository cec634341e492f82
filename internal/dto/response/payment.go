package response

import (
	"time"

	"service-marketplace/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID             string               `json:"id"`
	BookingID      string               `json:"booking_id"`
	Total          decimal.Decimal      `json:"total"`
	FeeRate        decimal.Decimal      `json:"fee_rate"`
	FeeAmount      decimal.Decimal      `json:"fee_amount"`
	ProviderPayout decimal.Decimal      `json:"provider_payout"`
	Status         entity.PaymentStatus `json:"status"`
	Method         *string              `json:"method,omitempty"`
	TransactionID  *string              `json:"transaction_id,omitempty"`
	PaidAt         *time.Time           `json:"paid_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type LedgerEntryResponse struct {
	ID            string                 `json:"id"`
	Type          entity.LedgerEntryType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	BalanceBefore decimal.Decimal        `json:"balance_before"`
	BalanceAfter  decimal.Decimal        `json:"balance_after"`
	Reference     string                 `json:"reference"`
	CreatedAt     time.Time              `json:"created_at"`
}

type BalanceResponse struct {
	AvailableBalance decimal.Decimal `json:"available_balance"`
	TotalEarned      decimal.Decimal `json:"total_earned"`
	FeeRate          decimal.Decimal `json:"fee_rate"`
}

type TransactionListResponse struct {
	Balance BalanceResponse       `json:"balance"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// Helper converters
func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.ID.String(),
		BookingID:      payment.BookingID.String(),
		Total:          payment.Total,
		FeeRate:        payment.FeeRate,
		FeeAmount:      payment.FeeAmount,
		ProviderPayout: payment.ProviderPayout,
		Status:         payment.Status,
		Method:         payment.Method,
		TransactionID:  payment.TransactionID,
		PaidAt:         payment.PaidAt,
		CreatedAt:      payment.CreatedAt,
	}
}

func LedgerEntryToResponse(entry *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            entry.ID.String(),
		Type:          entry.Type,
		Amount:        entry.Amount,
		Description:   entry.Description,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		Reference:     entry.Reference,
		CreatedAt:     entry.CreatedAt,
	}
}
