package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	Base
	ProviderID      uuid.UUID       `db:"provider_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Level           string          `db:"level"`
	DurationMinutes int             `db:"duration_minutes"`
	Price           decimal.Decimal `db:"price"`
	Active          bool            `db:"active"`
}
