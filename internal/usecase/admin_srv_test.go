package usecase

import (
	"context"
	"testing"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/dto/request"
	"service-marketplace/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func todayAt(hour int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
}

func TestPlatformStats(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	admin := NewAdminService(env.repo, testConfig(), zap.NewNop())
	payments := NewPaymentService(env.repo, testConfig(), zap.NewNop())
	tickets := NewTicketService(env.repo, zap.NewNop())

	// One booking today, one next week; the first is paid this month.
	booking := env.seedBooking(client.ID, provider.ID, service.ID, todayAt(9), entity.BookingStatusPending)
	env.seedBooking(client.ID, provider.ID, service.ID, todayAt(11).AddDate(0, 0, 7), entity.BookingStatusPending)

	payment, err := payments.EnsurePayment(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	_, err = payments.ProcessPayment(context.Background(), client.ID, &request.ProcessPaymentRequest{PaymentID: payment.ID, Method: "pix"})
	require.NoError(t, err)

	_, err = tickets.Open(context.Background(), client.ID, &request.CreateTicketRequest{
		Subject:     "Cannot reach the provider",
		Description: "The chat shows my messages but there is no answer.",
		Priority:    "urgent",
	})
	require.NoError(t, err)

	stats, err := admin.PlatformStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalProviders)
	assert.EqualValues(t, 1, stats.TotalServices)
	assert.EqualValues(t, 1, stats.BookingsToday)
	assert.EqualValues(t, 1, stats.OpenTickets)
	assert.EqualValues(t, 1, stats.UrgentTickets)
	assert.True(t, stats.MonthRevenue.Equal(decimal.NewFromInt(100)), "revenue %s", stats.MonthRevenue)
	assert.True(t, stats.MonthFees.Equal(decimal.NewFromInt(10)), "fees %s", stats.MonthFees)
}

func TestWeeklyBookingsFillsEmptyDays(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	admin := NewAdminService(env.repo, testConfig(), zap.NewNop())

	env.seedBooking(client.ID, provider.ID, service.ID, todayAt(9), entity.BookingStatusPending)
	env.seedBooking(client.ID, provider.ID, service.ID, todayAt(14), entity.BookingStatusPending)
	env.seedBooking(client.ID, provider.ID, service.ID, todayAt(10).AddDate(0, 0, -3), entity.BookingStatusPending)

	weekly, err := admin.WeeklyBookings(context.Background())
	require.NoError(t, err)

	require.Len(t, weekly.Days, 7)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), weekly.Days[6].Day)
	assert.EqualValues(t, 2, weekly.Days[6].Count)
	assert.EqualValues(t, 1, weekly.Days[3].Count)

	var total int64
	for _, day := range weekly.Days {
		total += day.Count
	}
	assert.EqualValues(t, 3, total)
}

func TestAdminCreateUser(t *testing.T) {
	env := newTestEnv()
	admin := NewAdminService(env.repo, testConfig(), zap.NewNop())

	resp, err := admin.CreateUser(context.Background(), &request.AdminCreateUserRequest{
		Name:     "Carol Staff",
		Email:    "carol@example.com",
		Password: "sup3rsecret",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	user, _ := env.users.FindByEmail(context.Background(), "carol@example.com")
	require.NotNil(t, user)
	assert.NotEqual(t, "sup3rsecret", user.PasswordHash)
	assert.True(t, user.IsActive)
	// Staff creation opens no session.
	assert.Empty(t, env.sessions.sessions)

	_, err = admin.CreateUser(context.Background(), &request.AdminCreateUserRequest{
		Name:     "Carol Again",
		Email:    "carol@example.com",
		Password: "sup3rsecret",
		Role:     "client",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Conflict))
}

func TestAdminCreateProviderGetsProfile(t *testing.T) {
	env := newTestEnv()
	admin := NewAdminService(env.repo, testConfig(), zap.NewNop())

	specialty := "Plumber"
	resp, err := admin.CreateUser(context.Background(), &request.AdminCreateUserRequest{
		Name:      "Dave Provider",
		Email:     "dave@example.com",
		Password:  "sup3rsecret",
		Role:      "provider",
		Specialty: &specialty,
	})
	require.NoError(t, err)

	provider, _ := env.providers.FindByUserID(context.Background(), uuid.MustParse(resp.ID))
	require.NotNil(t, provider)
	assert.True(t, provider.FeeRate.Equal(decimal.NewFromFloat(10.0)))

	_, err = admin.CreateUser(context.Background(), &request.AdminCreateUserRequest{
		Name:     "Erin Provider",
		Email:    "erin@example.com",
		Password: "sup3rsecret",
		Role:     "provider",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Validation))
}
