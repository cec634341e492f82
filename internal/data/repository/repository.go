package repository

import (
	"context"
	"fmt"

	"service-marketplace/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Category     CategoryRepository
	Provider     ProviderRepository
	Service      ServiceRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Ledger       LedgerRepository
	Rating       RatingRepository
	Notification NotificationRepository
	Conversation ConversationRepository
	Message      MessageRepository
	Ticket       TicketRepository
	TicketReply  TicketReplyRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newWithQuerier(db, log)
	r.db = db
	return r
}

func newWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(q, log),
		Session:      NewSessionRepository(q, log),
		Category:     NewCategoryRepository(q, log),
		Provider:     NewProviderRepository(q, log),
		Service:      NewServiceRepository(q, log),
		Booking:      NewBookingRepository(q, log),
		Payment:      NewPaymentRepository(q, log),
		Ledger:       NewLedgerRepository(q, log),
		Rating:       NewRatingRepository(q, log),
		Notification: NewNotificationRepository(q, log),
		Conversation: NewConversationRepository(q, log),
		Message:      NewMessageRepository(q, log),
		Ticket:       NewTicketRepository(q, log),
		TicketReply:  NewTicketReplyRepository(q, log),
		log:          log,
	}
}

// WithinTx runs fn with a Repository whose queries all go through one
// transaction; a non-nil error from fn rolls everything back. Repositories
// assembled by hand without a pool (tests) run fn on the receiver directly.
func (r *Repository) WithinTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txRepo := newWithQuerier(tx, r.log)
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
