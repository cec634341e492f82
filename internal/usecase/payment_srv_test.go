package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/dto/request"
	"service-marketplace/pkg/apperrors"
	"service-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session:  utils.SessionConfig{ExpiryHours: 24},
		Platform: utils.PlatformConfig{DefaultFeeRate: 10.0, MaxFeeRate: 30.0},
	}
}

func TestEnsurePayment(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)

	resp, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	// 10% of 100.00: fee 10.00, payout 90.00.
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(100)), "total %s", resp.Total)
	assert.True(t, resp.FeeAmount.Equal(decimal.NewFromInt(10)), "fee %s", resp.FeeAmount)
	assert.True(t, resp.ProviderPayout.Equal(decimal.NewFromInt(90)), "payout %s", resp.ProviderPayout)
	assert.True(t, resp.Total.Equal(resp.FeeAmount.Add(resp.ProviderPayout)))
	assert.Equal(t, entity.PaymentStatusPending, resp.Status)

	// Second call returns the same payment instead of creating another.
	again, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Len(t, env.payments.payments, 1)
}

func TestEnsurePaymentSnapshotsFeeRate(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)

	resp, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	// A later rate change must not alter the existing payment.
	provider.FeeRate = decimal.NewFromInt(25)
	again, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	assert.True(t, again.FeeAmount.Equal(resp.FeeAmount))
}

func TestEnsurePaymentWrongClient(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)

	_, err := srv.EnsurePayment(context.Background(), uuid.New(), booking.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestProcessPayment(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)
	payment, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	resp, err := srv.ProcessPayment(context.Background(), client.ID, &request.ProcessPaymentRequest{
		PaymentID: payment.ID,
		Method:    "pix",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
	require.NotNil(t, resp.TransactionID)
	assert.True(t, strings.HasPrefix(*resp.TransactionID, "tx_"))
	require.NotNil(t, resp.PaidAt)
	assert.WithinDuration(t, time.Now().UTC(), *resp.PaidAt, time.Minute)

	// Paying a pending booking confirms it.
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)

	// Ledger credit and cached balance move together.
	require.Len(t, env.ledger.entries, 1)
	entry := env.ledger.entries[0]
	assert.Equal(t, entity.LedgerCredit, entry.Type)
	assert.True(t, entry.BalanceBefore.Equal(decimal.Zero))
	assert.True(t, entry.BalanceAfter.Equal(decimal.NewFromInt(90)))
	assert.True(t, entry.BalanceAfter.Equal(entry.BalanceBefore.Add(entry.Amount)))
	assert.True(t, provider.AvailableBalance.Equal(decimal.NewFromInt(90)))
	assert.True(t, provider.TotalEarned.Equal(decimal.NewFromInt(90)))

	unread, _ := env.notifications.CountUnread(context.Background(), providerUser.ID)
	assert.EqualValues(t, 1, unread)

	// Paying again is rejected.
	_, err = srv.ProcessPayment(context.Background(), client.ID, &request.ProcessPaymentRequest{
		PaymentID: payment.ID,
		Method:    "pix",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidState))
}

func TestProcessPaymentWrongClient(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)
	payment, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	_, err = srv.ProcessPayment(context.Background(), uuid.New(), &request.ProcessPaymentRequest{
		PaymentID: payment.ID,
		Method:    "card",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestRequestWithdrawal(t *testing.T) {
	env := newTestEnv()
	_, providerUser, provider, _ := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	provider.AvailableBalance = decimal.NewFromInt(50)
	provider.TotalEarned = decimal.NewFromInt(200)

	_, err := srv.RequestWithdrawal(context.Background(), providerUser.ID, &request.WithdrawalRequest{Amount: 80})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InsufficientFunds))

	resp, err := srv.RequestWithdrawal(context.Background(), providerUser.ID, &request.WithdrawalRequest{Amount: 30})
	require.NoError(t, err)

	assert.Equal(t, entity.LedgerDebit, resp.Type)
	assert.True(t, resp.BalanceBefore.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.BalanceAfter.Equal(decimal.NewFromInt(20)))
	assert.True(t, strings.HasPrefix(resp.Reference, "withdrawal_"))

	assert.True(t, provider.AvailableBalance.Equal(decimal.NewFromInt(20)))
	// Withdrawals never touch lifetime earnings.
	assert.True(t, provider.TotalEarned.Equal(decimal.NewFromInt(200)))
}

func TestRequestWithdrawalRequiresProvider(t *testing.T) {
	env := newTestEnv()
	client, _, _, _ := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	_, err := srv.RequestWithdrawal(context.Background(), client.ID, &request.WithdrawalRequest{Amount: 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestSetFeeRate(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, _ := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	err := srv.SetFeeRate(context.Background(), providerUser.ID, &request.SetFeeRateRequest{FeeRate: 15})
	require.NoError(t, err)
	assert.True(t, provider.FeeRate.Equal(decimal.NewFromInt(15)))

	err = srv.SetFeeRate(context.Background(), providerUser.ID, &request.SetFeeRateRequest{FeeRate: 35})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))

	err = srv.SetFeeRate(context.Background(), client.ID, &request.SetFeeRateRequest{FeeRate: 12})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestListTransactions(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)
	payment, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	_, err = srv.ProcessPayment(context.Background(), client.ID, &request.ProcessPaymentRequest{PaymentID: payment.ID, Method: "card"})
	require.NoError(t, err)
	_, err = srv.RequestWithdrawal(context.Background(), providerUser.ID, &request.WithdrawalRequest{Amount: 40})
	require.NoError(t, err)

	resp, err := srv.ListTransactions(context.Background(), providerUser.ID)
	require.NoError(t, err)

	assert.True(t, resp.Balance.AvailableBalance.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Balance.TotalEarned.Equal(decimal.NewFromInt(90)))
	require.Len(t, resp.Entries, 2)

	// Each entry keeps its own before/after arithmetic consistent.
	for _, entry := range resp.Entries {
		switch entry.Type {
		case entity.LedgerCredit:
			assert.True(t, entry.BalanceAfter.Equal(entry.BalanceBefore.Add(entry.Amount)))
		case entity.LedgerDebit:
			assert.True(t, entry.BalanceAfter.Equal(entry.BalanceBefore.Sub(entry.Amount)))
		}
	}
}

// stalePaymentRepo answers FindByID from a snapshot taken while the payment
// was pending, the view a request holds when a parallel settle commits first.
// Writes go to the backing store.
type stalePaymentRepo struct {
	*fakePaymentRepo
	snapshot entity.Payment
}

func (s *stalePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	if s.snapshot.ID == id {
		stale := s.snapshot
		return &stale, nil
	}
	return s.fakePaymentRepo.FindByID(context.Background(), id)
}

func TestProcessPaymentDoubleSettleCreditsOnce(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusPending)
	payment, err := srv.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	paymentID := uuid.MustParse(payment.ID)
	env.repo.Payment = &stalePaymentRepo{
		fakePaymentRepo: env.payments,
		snapshot:        *env.payments.payments[paymentID],
	}

	req := &request.ProcessPaymentRequest{PaymentID: payment.ID, Method: "pix"}
	_, err = srv.ProcessPayment(context.Background(), client.ID, req)
	require.NoError(t, err)

	// The rival request read the payment while it was still pending, so it
	// gets past the status precheck and must lose on the guarded update.
	_, err = srv.ProcessPayment(context.Background(), client.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidState))

	// One credit, one payout.
	require.Len(t, env.ledger.entries, 1)
	assert.True(t, provider.AvailableBalance.Equal(decimal.NewFromInt(90)), "balance %s", provider.AvailableBalance)
	assert.True(t, provider.TotalEarned.Equal(decimal.NewFromInt(90)))
}

// staleProviderRepo answers FindByUserID with a balance snapshot taken before
// a rival withdrawal debited the row.
type staleProviderRepo struct {
	*fakeProviderRepo
	snapshot entity.Provider
}

func (s *staleProviderRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Provider, error) {
	if s.snapshot.UserID == userID {
		stale := s.snapshot
		return &stale, nil
	}
	return s.fakeProviderRepo.FindByUserID(context.Background(), userID)
}

func TestRequestWithdrawalParallelRequestsCannotOverdraw(t *testing.T) {
	env := newTestEnv()
	_, providerUser, provider, _ := env.seedMarketplace()
	srv := NewPaymentService(env.repo, testConfig(), zap.NewNop())

	provider.AvailableBalance = decimal.NewFromInt(100)
	provider.TotalEarned = decimal.NewFromInt(100)

	// Both requests enter holding the 100.00 view of the balance.
	env.repo.Provider = &staleProviderRepo{fakeProviderRepo: env.providers, snapshot: *provider}

	_, err := srv.RequestWithdrawal(context.Background(), providerUser.ID, &request.WithdrawalRequest{Amount: 80})
	require.NoError(t, err)

	// The funds check runs on the locked row, which is already down to
	// 20.00, so the second request is rejected.
	_, err = srv.RequestWithdrawal(context.Background(), providerUser.ID, &request.WithdrawalRequest{Amount: 80})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InsufficientFunds))

	require.Len(t, env.ledger.entries, 1)
	assert.True(t, provider.AvailableBalance.Equal(decimal.NewFromInt(20)), "balance %s", provider.AvailableBalance)
}
