package repository

import (
	"context"
	"fmt"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrAlreadyRated is returned by Create when the one-rating-per-booking
// unique index rejects the insert.
var ErrAlreadyRated = fmt.Errorf("booking already rated")

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error)
	SetReply(ctx context.Context, id uuid.UUID, reply string, at time.Time) error
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Rating, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Rating, error)
}

type ratingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRatingRepository(db database.Querier, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

const ratingColumns = `id, booking_id, client_id, provider_id, score, comment, anonymous, provider_reply, replied_at, created_at`

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, booking_id, client_id, provider_id, score, comment, anonymous, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.BookingID,
		rating.ClientID,
		rating.ProviderID,
		rating.Score,
		rating.Comment,
		rating.Anonymous,
		rating.CreatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err, "ratings_booking_id_key") {
			return ErrAlreadyRated
		}
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("booking_id", rating.BookingID.String()),
		)
		return fmt.Errorf("create rating for booking %s: %w", rating.BookingID.String(), err)
	}

	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE id = $1`

	rating, err := r.scanRating(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by ID",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return nil, fmt.Errorf("find rating by ID %s: %w", id.String(), err)
	}

	return rating, nil
}

func (r *ratingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE booking_id = $1`

	rating, err := r.scanRating(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find rating by booking ID %s: %w", bookingID.String(), err)
	}

	return rating, nil
}

func (r *ratingRepository) SetReply(ctx context.Context, id uuid.UUID, reply string, at time.Time) error {
	query := `UPDATE ratings SET provider_reply = $2, replied_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, reply, at)
	if err != nil {
		r.log.Error("Failed to set rating reply",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return fmt.Errorf("set reply on rating %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rating %s not found", id.String())
	}

	return nil
}

func (r *ratingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE provider_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		r.log.Error("Failed to list ratings by provider",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("list ratings by provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return r.collectRatings(rows)
}

func (r *ratingRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Rating, error) {
	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE client_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		r.log.Error("Failed to list ratings by client",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return nil, fmt.Errorf("list ratings by client %s: %w", clientID.String(), err)
	}
	defer rows.Close()

	return r.collectRatings(rows)
}

func (r *ratingRepository) scanRating(row pgx.Row) (*entity.Rating, error) {
	var rating entity.Rating
	err := row.Scan(
		&rating.ID,
		&rating.BookingID,
		&rating.ClientID,
		&rating.ProviderID,
		&rating.Score,
		&rating.Comment,
		&rating.Anonymous,
		&rating.ProviderReply,
		&rating.RepliedAt,
		&rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) collectRatings(rows pgx.Rows) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	for rows.Next() {
		rating, err := r.scanRating(rows)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, nil
}
