package repository

import (
	"context"
	"fmt"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	// FindByIDForUpdate locks the provider row until the surrounding
	// transaction ends; every balance movement reads through it so that
	// concurrent settles and withdrawals serialize on the row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Provider, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Provider, error)
	UpdateFeeRate(ctx context.Context, id uuid.UUID, rate decimal.Decimal) error
	// UpdateBalance rewrites the cached balance and lifetime earned; called in
	// the same transaction as the ledger entry that justifies the new values.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance, totalEarned decimal.Decimal) error
	Search(ctx context.Context, categoryID *uuid.UUID, city string, limit, offset int) ([]*entity.Provider, error)
	CountSearch(ctx context.Context, categoryID *uuid.UUID, city string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type providerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProviderRepository(db database.Querier, log *zap.Logger) ProviderRepository {
	return &providerRepository{
		db:  db,
		log: log.With(zap.String("repository", "provider")),
	}
}

const providerColumns = `id, user_id, category_id, specialty, description, experience_years,
	hourly_rate, fee_rate, available, online_capable, verified, available_balance, total_earned,
	created_at, updated_at`

func (r *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	query := `
		INSERT INTO providers (id, user_id, category_id, specialty, description, experience_years,
			hourly_rate, fee_rate, available, online_capable, verified, available_balance,
			total_earned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		provider.ID,
		provider.UserID,
		provider.CategoryID,
		provider.Specialty,
		provider.Description,
		provider.ExperienceYears,
		provider.HourlyRate,
		provider.FeeRate,
		provider.Available,
		provider.OnlineCapable,
		provider.Verified,
		provider.AvailableBalance,
		provider.TotalEarned,
		provider.CreatedAt,
		provider.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create provider",
			zap.Error(err),
			zap.String("user_id", provider.UserID.String()),
		)
		return fmt.Errorf("create provider for user %s: %w", provider.UserID.String(), err)
	}

	return nil
}

func (r *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`

	provider, err := r.scanProvider(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by ID",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("find provider by ID %s: %w", id.String(), err)
	}

	return provider, nil
}

func (r *providerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1 FOR UPDATE`

	provider, err := r.scanProvider(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock provider row",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return nil, fmt.Errorf("lock provider %s: %w", id.String(), err)
	}

	return provider, nil
}

func (r *providerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE user_id = $1`

	provider, err := r.scanProvider(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find provider by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find provider by user ID %s: %w", userID.String(), err)
	}

	return provider, nil
}

func (r *providerRepository) UpdateFeeRate(ctx context.Context, id uuid.UUID, rate decimal.Decimal) error {
	query := `UPDATE providers SET fee_rate = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, rate)
	if err != nil {
		r.log.Error("Failed to update fee rate",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return fmt.Errorf("update fee rate for provider %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s not found", id.String())
	}

	return nil
}

func (r *providerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance, totalEarned decimal.Decimal) error {
	query := `UPDATE providers SET available_balance = $2, total_earned = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, balance, totalEarned)
	if err != nil {
		r.log.Error("Failed to update provider balance",
			zap.Error(err),
			zap.String("provider_id", id.String()),
		)
		return fmt.Errorf("update balance for provider %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("provider %s not found", id.String())
	}

	return nil
}

func (r *providerRepository) Search(ctx context.Context, categoryID *uuid.UUID, city string, limit, offset int) ([]*entity.Provider, error) {
	query := `
		SELECT ` + providerColumns + `
		FROM providers p
		WHERE p.available = TRUE
		  AND ($1::uuid IS NULL OR p.category_id = $1)
		  AND ($2 = '' OR EXISTS (
		      SELECT 1 FROM users u WHERE u.id = p.user_id AND u.city ILIKE $2))
		ORDER BY p.verified DESC, p.created_at
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, categoryID, city, limit, offset)
	if err != nil {
		r.log.Error("Failed to search providers", zap.Error(err), zap.String("city", city))
		return nil, fmt.Errorf("search providers: %w", err)
	}
	defer rows.Close()

	var providers []*entity.Provider
	for rows.Next() {
		provider, err := r.scanProvider(rows)
		if err != nil {
			r.log.Error("Failed to scan provider row", zap.Error(err))
			return nil, fmt.Errorf("scan provider row: %w", err)
		}
		providers = append(providers, provider)
	}

	return providers, nil
}

func (r *providerRepository) CountSearch(ctx context.Context, categoryID *uuid.UUID, city string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM providers p
		WHERE p.available = TRUE
		  AND ($1::uuid IS NULL OR p.category_id = $1)
		  AND ($2 = '' OR EXISTS (
		      SELECT 1 FROM users u WHERE u.id = p.user_id AND u.city ILIKE $2))
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, categoryID, city).Scan(&count); err != nil {
		r.log.Error("Failed to count providers", zap.Error(err))
		return 0, fmt.Errorf("count providers: %w", err)
	}

	return count, nil
}

func (r *providerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM providers`).Scan(&count); err != nil {
		r.log.Error("Failed to count all providers", zap.Error(err))
		return 0, fmt.Errorf("count all providers: %w", err)
	}

	return count, nil
}

func (r *providerRepository) scanProvider(row pgx.Row) (*entity.Provider, error) {
	var provider entity.Provider
	err := row.Scan(
		&provider.ID,
		&provider.UserID,
		&provider.CategoryID,
		&provider.Specialty,
		&provider.Description,
		&provider.ExperienceYears,
		&provider.HourlyRate,
		&provider.FeeRate,
		&provider.Available,
		&provider.OnlineCapable,
		&provider.Verified,
		&provider.AvailableBalance,
		&provider.TotalEarned,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &provider, nil
}
