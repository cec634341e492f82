package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/data/repository"
	"service-marketplace/internal/dto/request"
	"service-marketplace/internal/dto/response"
	"service-marketplace/pkg/apperrors"
	"service-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundred = decimal.NewFromInt(100)

type PaymentService interface {
	// EnsurePayment returns the booking's payment, creating a pending one
	// with a fee snapshot on first call.
	EnsurePayment(ctx context.Context, clientID, bookingID uuid.UUID) (*response.PaymentResponse, error)
	ProcessPayment(ctx context.Context, clientID uuid.UUID, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	SetFeeRate(ctx context.Context, providerUserID uuid.UUID, req *request.SetFeeRateRequest) error
	RequestWithdrawal(ctx context.Context, providerUserID uuid.UUID, req *request.WithdrawalRequest) (*response.LedgerEntryResponse, error)
	ListTransactions(ctx context.Context, providerUserID uuid.UUID) (*response.TransactionListResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) EnsurePayment(ctx context.Context, clientID, bookingID uuid.UUID) (*response.PaymentResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.NotFound, "booking not found")
	}
	if booking.ClientID != clientID {
		return nil, apperrors.New(apperrors.Unauthorized, "booking belongs to another client")
	}

	existing, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp := response.PaymentToResponse(existing)
		return &resp, nil
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperrors.New(apperrors.NotFound, "service not found")
	}

	provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.NotFound, "provider not found")
	}

	// Snapshot the fee at creation time; later rate changes must not touch
	// this payment.
	feeRate := provider.FeeRate
	total := service.Price
	feeAmount := total.Mul(feeRate).Div(oneHundred)
	payout := total.Sub(feeAmount)

	now := time.Now().UTC()
	payment := &entity.Payment{
		Base:           entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		BookingID:      booking.ID,
		Total:          total,
		FeeRate:        feeRate,
		FeeAmount:      feeAmount,
		ProviderPayout: payout,
		Status:         entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("total", total.String()),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

// ProcessPayment settles a pending payment through the simulated gateway.
// Payment, booking, ledger and provider balance all move in one transaction.
func (s *paymentService) ProcessPayment(ctx context.Context, clientID uuid.UUID, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	paymentID, err := uuid.Parse(req.PaymentID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "invalid payment ID")
	}

	payment, err := s.repo.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperrors.New(apperrors.NotFound, "payment not found")
	}

	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.NotFound, "booking not found")
	}
	if booking.ClientID != clientID {
		return nil, apperrors.New(apperrors.Unauthorized, "payment belongs to another client")
	}

	if payment.Status == entity.PaymentStatusPaid {
		return nil, apperrors.New(apperrors.InvalidState, "payment is already paid")
	}
	if payment.Status != entity.PaymentStatusPending {
		return nil, apperrors.Newf(apperrors.InvalidState, "payment is %s and cannot be processed", payment.Status)
	}

	var provider *entity.Provider
	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		now := time.Now().UTC()
		transactionID := utils.GenerateTransactionID(payment.ID)

		// MarkPaid settles only a still-pending row; a concurrent request
		// that also read the payment as pending aborts here before any
		// ledger write.
		if err := r.Payment.MarkPaid(ctx, payment.ID, req.Method, transactionID, now); err != nil {
			if errors.Is(err, repository.ErrAlreadySettled) {
				return apperrors.New(apperrors.InvalidState, "payment is already paid")
			}
			return err
		}

		payment.Status = entity.PaymentStatusPaid
		payment.Method = &req.Method
		payment.TransactionID = &transactionID
		payment.PaidAt = &now
		payment.UpdatedAt = now

		if booking.Status == entity.BookingStatusPending {
			if err := r.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
				return err
			}
			booking.Status = entity.BookingStatusConfirmed
		}

		provider, err = r.Provider.FindByIDForUpdate(ctx, booking.ProviderID)
		if err != nil {
			return err
		}
		if provider == nil {
			return apperrors.New(apperrors.NotFound, "provider not found")
		}

		balanceBefore := provider.AvailableBalance
		balanceAfter := balanceBefore.Add(payment.ProviderPayout)

		entry := &entity.LedgerEntry{
			BaseSimple:    entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now},
			ProviderID:    provider.ID,
			Type:          entity.LedgerCredit,
			Amount:        payment.ProviderPayout,
			Description:   fmt.Sprintf("Payout for booking %s", booking.ID.String()),
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Reference:     transactionID,
		}
		if err := r.Ledger.Create(ctx, entry); err != nil {
			return err
		}

		provider.AvailableBalance = balanceAfter
		provider.TotalEarned = provider.TotalEarned.Add(payment.ProviderPayout)
		return r.Provider.UpdateBalance(ctx, provider.ID, provider.AvailableBalance, provider.TotalEarned)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("payout", payment.ProviderPayout.String()),
	)

	link := bookingLink(booking.ID)
	notify(ctx, s.repo, s.log, provider.UserID, entity.NotificationPayment,
		"Payment received",
		fmt.Sprintf("You received %s for booking on %s.", payment.ProviderPayout.StringFixed(2), booking.ScheduledAt.Format("02 Jan 2006 15:04")),
		&link)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) SetFeeRate(ctx context.Context, providerUserID uuid.UUID, req *request.SetFeeRateRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.FeeRate < 0 || req.FeeRate > s.config.Platform.MaxFeeRate {
		return apperrors.Newf(apperrors.Validation, "fee rate must be between 0 and %.1f", s.config.Platform.MaxFeeRate)
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return err
	}
	if provider == nil {
		return apperrors.New(apperrors.Unauthorized, "caller is not a provider")
	}

	return s.repo.Provider.UpdateFeeRate(ctx, provider.ID, decimal.NewFromFloat(req.FeeRate))
}

func (s *paymentService) RequestWithdrawal(ctx context.Context, providerUserID uuid.UUID, req *request.WithdrawalRequest) (*response.LedgerEntryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	amount := decimal.NewFromFloat(req.Amount)
	if !amount.IsPositive() {
		return nil, apperrors.New(apperrors.Validation, "withdrawal amount must be positive")
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.Unauthorized, "caller is not a provider")
	}

	var entry *entity.LedgerEntry
	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		// The funds check runs against the locked row, so two withdrawals
		// racing on the same balance are applied one after the other.
		locked, err := r.Provider.FindByIDForUpdate(ctx, provider.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperrors.New(apperrors.NotFound, "provider not found")
		}
		if amount.GreaterThan(locked.AvailableBalance) {
			return apperrors.Newf(apperrors.InsufficientFunds, "available balance is %s", locked.AvailableBalance.StringFixed(2))
		}

		balanceBefore := locked.AvailableBalance
		balanceAfter := balanceBefore.Sub(amount)

		entry = &entity.LedgerEntry{
			BaseSimple:    entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now().UTC()},
			ProviderID:    locked.ID,
			Type:          entity.LedgerDebit,
			Amount:        amount,
			Description:   "Withdrawal request",
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Reference:     utils.GenerateWithdrawalRef(),
		}
		if err := r.Ledger.Create(ctx, entry); err != nil {
			return err
		}

		return r.Provider.UpdateBalance(ctx, locked.ID, balanceAfter, locked.TotalEarned)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Withdrawal recorded",
		zap.String("provider_id", provider.ID.String()),
		zap.String("amount", amount.String()),
	)

	resp := response.LedgerEntryToResponse(entry)
	return &resp, nil
}

func (s *paymentService) ListTransactions(ctx context.Context, providerUserID uuid.UUID) (*response.TransactionListResponse, error) {
	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.Unauthorized, "caller is not a provider")
	}

	entries, err := s.repo.Ledger.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	resp := &response.TransactionListResponse{
		Balance: response.BalanceResponse{
			AvailableBalance: provider.AvailableBalance,
			TotalEarned:      provider.TotalEarned,
			FeeRate:          provider.FeeRate,
		},
		Entries: make([]response.LedgerEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, response.LedgerEntryToResponse(entry))
	}

	return resp, nil
}
