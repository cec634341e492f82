package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment is one-to-one with a booking. FeeRate is snapshotted from the
// provider's configured rate at creation time; later rate changes never alter
// an existing payment.
type Payment struct {
	Base
	BookingID      uuid.UUID       `db:"booking_id"`
	Total          decimal.Decimal `db:"total"`
	FeeRate        decimal.Decimal `db:"fee_rate"`
	FeeAmount      decimal.Decimal `db:"fee_amount"`
	ProviderPayout decimal.Decimal `db:"provider_payout"`
	Status         PaymentStatus   `db:"status"`
	Method         *string         `db:"method"`
	TransactionID  *string         `db:"transaction_id"`
	PaidAt         *time.Time      `db:"paid_at"`
}
