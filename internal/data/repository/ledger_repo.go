package repository

import (
	"context"
	"fmt"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LedgerRepository interface {
	// Create appends an entry; ledger rows are never updated or deleted.
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.LedgerEntry, error)
}

type ledgerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLedgerRepository(db database.Querier, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, provider_id, type, amount, description, balance_before, balance_after, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ProviderID,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Reference,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ledger entry",
			zap.Error(err),
			zap.String("provider_id", entry.ProviderID.String()),
			zap.String("type", string(entry.Type)),
		)
		return fmt.Errorf("create ledger entry for provider %s: %w", entry.ProviderID.String(), err)
	}

	return nil
}

func (r *ledgerRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, provider_id, type, amount, description, balance_before, balance_after, reference, created_at
		FROM ledger_entries
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		r.log.Error("Failed to list ledger entries",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("list ledger entries for provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.LedgerEntry
	for rows.Next() {
		var entry entity.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ProviderID,
			&entry.Type,
			&entry.Amount,
			&entry.Description,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.Reference,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan ledger entry row", zap.Error(err))
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
