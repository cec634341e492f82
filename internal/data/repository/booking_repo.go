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

// ErrSlotTaken is returned by Create when the active-slot unique index
// rejects the insert. The check-then-insert sequence is not atomic on its
// own; the index is what actually guarantees one active booking per
// (provider, scheduled_at).
var ErrSlotTaken = fmt.Errorf("booking slot already taken")

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// Business queries
	ExistsActiveAt(ctx context.Context, providerID uuid.UUID, at time.Time) (bool, error)
	FindActiveBetween(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByClient(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountByProvider(ctx context.Context, providerID uuid.UUID, status entity.BookingStatus) (int64, error)

	// Admin dashboard aggregates
	CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountPerDay(ctx context.Context, from, to time.Time) ([]*entity.BookingsPerDay, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, client_id, provider_id, service_id, scheduled_at, status, notes, modality, service_address, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, client_id, provider_id, service_id, scheduled_at, status, notes, modality, service_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ClientID,
		booking.ProviderID,
		booking.ServiceID,
		booking.ScheduledAt,
		booking.Status,
		booking.Notes,
		booking.Modality,
		booking.ServiceAddress,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if database.IsUniqueViolation(err, "bookings_provider_slot_active_idx") {
			return ErrSlotTaken
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("client_id", booking.ClientID.String()),
			zap.String("provider_id", booking.ProviderID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET scheduled_at = $2, status = $3, notes = $4, modality = $5,
		    service_address = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ScheduledAt,
		booking.Status,
		booking.Notes,
		booking.Modality,
		booking.ServiceAddress,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) ExistsActiveAt(ctx context.Context, providerID uuid.UUID, at time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE provider_id = $1
			  AND scheduled_at = $2
			  AND status IN ('pending', 'confirmed', 'in_progress')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, providerID, at).Scan(&exists); err != nil {
		r.log.Error("Failed to check active booking slot",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
			zap.Time("scheduled_at", at),
		)
		return false, fmt.Errorf("check active booking slot: %w", err)
	}

	return exists, nil
}

func (r *bookingRepository) FindActiveBetween(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		  AND scheduled_at >= $2
		  AND scheduled_at < $3
		  AND status IN ('pending', 'confirmed', 'in_progress')
		ORDER BY scheduled_at
	`

	rows, err := r.db.Query(ctx, query, providerID, from, to)
	if err != nil {
		r.log.Error("Failed to find active bookings",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find active bookings for provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) ListByClient(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE client_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY scheduled_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, clientID, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings by client",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return nil, fmt.Errorf("list bookings by client %s: %w", clientID.String(), err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountByClient(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE client_id = $1 AND ($2 = '' OR status = $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, clientID, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by client",
			zap.Error(err),
			zap.String("client_id", clientID.String()),
		)
		return 0, fmt.Errorf("count bookings by client %s: %w", clientID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) ListByProvider(ctx context.Context, providerID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		  AND ($2 = '' OR status = $2)
		ORDER BY scheduled_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, providerID, string(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings by provider",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("list bookings by provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountByProvider(ctx context.Context, providerID uuid.UUID, status entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE provider_id = $1 AND ($2 = '' OR status = $2)`

	var count int64
	if err := r.db.QueryRow(ctx, query, providerID, string(status)).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by provider",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count bookings by provider %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.ScheduledAt,
		&booking.Status,
		&booking.Notes,
		&booking.Modality,
		&booking.ServiceAddress,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingRepository) CountScheduledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE scheduled_at >= $1 AND scheduled_at < $2`

	var count int64
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		r.log.Error("Failed to count scheduled bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings scheduled between %s and %s: %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}

	return count, nil
}

func (r *bookingRepository) CountPerDay(ctx context.Context, from, to time.Time) ([]*entity.BookingsPerDay, error) {
	query := `
		SELECT date_trunc('day', scheduled_at) AS day, COUNT(*)
		FROM bookings
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to count bookings per day", zap.Error(err))
		return nil, fmt.Errorf("count bookings per day: %w", err)
	}
	defer rows.Close()

	var days []*entity.BookingsPerDay
	for rows.Next() {
		var day entity.BookingsPerDay
		if err := rows.Scan(&day.Day, &day.Count); err != nil {
			r.log.Error("Failed to scan bookings-per-day row", zap.Error(err))
			return nil, fmt.Errorf("scan bookings-per-day row: %w", err)
		}
		days = append(days, &day)
	}

	return days, nil
}
