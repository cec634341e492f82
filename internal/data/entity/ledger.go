package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerEntryType string

const (
	LedgerCredit LedgerEntryType = "credit"
	LedgerDebit  LedgerEntryType = "debit"
)

// LedgerEntry is an append-only accounting record for a provider.
// Invariant: BalanceAfter = BalanceBefore + Amount for credits and
// BalanceBefore - Amount for debits.
type LedgerEntry struct {
	BaseSimple
	ProviderID    uuid.UUID       `db:"provider_id"`
	Type          LedgerEntryType `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Reference     string          `db:"reference"`
}
