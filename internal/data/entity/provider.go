package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider is the service-offering profile attached to a user with the
// provider role. AvailableBalance mirrors the balance_after of the provider's
// newest ledger entry; both are written in the same transaction.
type Provider struct {
	Base
	UserID           uuid.UUID       `db:"user_id"`
	CategoryID       *uuid.UUID      `db:"category_id"`
	Specialty        string          `db:"specialty"`
	Description      *string         `db:"description"`
	ExperienceYears  int             `db:"experience_years"`
	HourlyRate       decimal.Decimal `db:"hourly_rate"`
	FeeRate          decimal.Decimal `db:"fee_rate"`
	Available        bool            `db:"available"`
	OnlineCapable    bool            `db:"online_capable"`
	Verified         bool            `db:"verified"`
	AvailableBalance decimal.Decimal `db:"available_balance"`
	TotalEarned      decimal.Decimal `db:"total_earned"`
}
