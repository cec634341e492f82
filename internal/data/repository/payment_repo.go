package repository

import (
	"context"
	"fmt"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrAlreadySettled means the payment left the pending status between the
// caller's read and its settle attempt.
var ErrAlreadySettled = fmt.Errorf("payment already settled")

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	// MarkPaid settles a pending payment; ErrAlreadySettled if it is no
	// longer pending.
	MarkPaid(ctx context.Context, id uuid.UUID, method, transactionID string, paidAt time.Time) error
	RevenueSince(ctx context.Context, since time.Time) (gross, fees decimal.Decimal, err error)
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, total, fee_rate, fee_amount, provider_payout, status, method, transaction_id, paid_at, created_at, updated_at`

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, total, fee_rate, fee_amount, provider_payout, status, method, transaction_id, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Total,
		payment.FeeRate,
		payment.FeeAmount,
		payment.ProviderPayout,
		payment.Status,
		payment.Method,
		payment.TransactionID,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := r.scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	payment, err := r.scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, method, transactionID string, paidAt time.Time) error {
	query := `
		UPDATE payments
		SET status = $2, method = $3, transaction_id = $4, paid_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`

	result, err := r.db.Exec(ctx, query,
		id,
		entity.PaymentStatusPaid,
		method,
		transactionID,
		paidAt,
		entity.PaymentStatusPending,
	)

	if err != nil {
		r.log.Error("Failed to mark payment paid",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("mark payment %s paid: %w", id.String(), err)
	}

	// The status guard makes a concurrent settle of the same payment lose
	// here instead of crediting the provider twice.
	if result.RowsAffected() == 0 {
		return ErrAlreadySettled
	}

	return nil
}

func (r *paymentRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(fee_amount), 0)
		FROM payments
		WHERE status = $1 AND paid_at >= $2
	`

	var gross, fees decimal.Decimal
	if err := r.db.QueryRow(ctx, query, entity.PaymentStatusPaid, since).Scan(&gross, &fees); err != nil {
		r.log.Error("Failed to sum revenue", zap.Error(err))
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum revenue since %s: %w", since.Format(time.RFC3339), err)
	}

	return gross, fees, nil
}

func (r *paymentRepository) scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Total,
		&payment.FeeRate,
		&payment.FeeAmount,
		&payment.ProviderPayout,
		&payment.Status,
		&payment.Method,
		&payment.TransactionID,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
