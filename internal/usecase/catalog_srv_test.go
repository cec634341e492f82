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

func TestSearchProviders(t *testing.T) {
	env := newTestEnv()
	_, _, provider, _ := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		Name:       "Electrical",
		Slug:       "electrical",
		Active:     true,
	}
	env.categories.categories = append(env.categories.categories, category)
	provider.CategoryID = &category.ID

	resp, err := srv.SearchProviders(context.Background(), &request.SearchProvidersRequest{CategorySlug: "electrical"})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, provider.ID.String(), resp.Data[0].ID)
	assert.Equal(t, "Bob Provider", resp.Data[0].Name)

	_, err = srv.SearchProviders(context.Background(), &request.SearchProvidersRequest{CategorySlug: "no-such-thing"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestSearchProvidersIncludesRatingStats(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())
	ratingSrv := NewRatingService(env.repo, zap.NewNop())

	for i, score := range []int{5, 3} {
		booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(9+i), entity.BookingStatusCompleted)
		_, err := ratingSrv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
			BookingID: booking.ID.String(),
			Score:     score,
		})
		require.NoError(t, err)
	}

	resp, err := srv.SearchProviders(context.Background(), &request.SearchProvidersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Data[0].TotalRatings)
	assert.InDelta(t, 4.0, resp.Data[0].AverageScore, 0.001)
}

func TestGetProviderDetail(t *testing.T) {
	env := newTestEnv()
	_, _, provider, service := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())

	// Inactive services are left out of the detail view.
	inactive := &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
		ProviderID:      provider.ID,
		Title:           "Old offer",
		Description:     "No longer available",
		Level:           "basic",
		DurationMinutes: 30,
		Price:           decimal.NewFromInt(40),
		Active:          false,
	}
	env.services.services[inactive.ID] = inactive

	resp, err := srv.GetProvider(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Equal(t, provider.ID.String(), resp.ID)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, service.ID.String(), resp.Services[0].ID)

	_, err = srv.GetProvider(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}

func TestCreateService(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, _ := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())

	resp, err := srv.CreateService(context.Background(), providerUser.ID, &request.CreateServiceRequest{
		Title:           "Panel upgrade",
		Description:     "Replace an old fuse panel with a modern breaker box.",
		DurationMinutes: 120,
		Price:           350,
	})
	require.NoError(t, err)

	assert.Equal(t, provider.ID.String(), resp.ProviderID)
	assert.Equal(t, "standard", resp.Level)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(350)))
	assert.True(t, resp.Active)

	// Clients cannot publish services.
	_, err = srv.CreateService(context.Background(), client.ID, &request.CreateServiceRequest{
		Title:           "Panel upgrade",
		Description:     "Replace an old fuse panel with a modern breaker box.",
		DurationMinutes: 120,
		Price:           350,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestUpdateService(t *testing.T) {
	env := newTestEnv()
	_, providerUser, _, service := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())

	newTitle := "Full wiring inspection"
	newPrice := 150.0
	resp, err := srv.UpdateService(context.Background(), providerUser.ID, service.ID, &request.UpdateServiceRequest{
		Title: &newTitle,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Full wiring inspection", resp.Title)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(150)))
	// Untouched fields stay put.
	assert.Equal(t, 60, resp.DurationMinutes)

	_, err = srv.UpdateService(context.Background(), uuid.New(), service.ID, &request.UpdateServiceRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestDeactivateService(t *testing.T) {
	env := newTestEnv()
	_, providerUser, _, service := env.seedMarketplace()
	srv := NewCatalogService(env.repo, zap.NewNop())

	err := srv.DeactivateService(context.Background(), providerUser.ID, service.ID)
	require.NoError(t, err)
	assert.False(t, service.Active)

	// Booking a deactivated service fails.
	bookingSrv := NewBookingService(env.repo, zap.NewNop())
	_, err = bookingSrv.Create(context.Background(), uuid.New(), &request.CreateBookingRequest{
		ServiceID:   service.ID.String(),
		ScheduledAt: tomorrowAt(10).Format(time.RFC3339),
		Modality:    "in_person",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NotFound))
}
