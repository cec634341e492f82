package usecase

import (
	"context"
	"testing"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/dto/request"
	"service-marketplace/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRate(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusCompleted)

	comment := "Quick and tidy work"
	resp, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     5,
		Comment:   &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Score)
	assert.Equal(t, "Alice Client", resp.ClientName)
	assert.Equal(t, &comment, resp.Comment)

	unread, _ := env.notifications.CountUnread(context.Background(), providerUser.ID)
	assert.EqualValues(t, 1, unread)
}

func TestRateAnonymousHidesName(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusCompleted)

	resp, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     4,
		Anonymous: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", resp.ClientName)

	// Listings keep the name hidden too.
	listed, err := srv.ListForProvider(context.Background(), provider.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Anonymous", listed[0].ClientName)
}

func TestRateGuards(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	pending := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(9), entity.BookingStatusPending)
	_, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: pending.ID.String(),
		Score:     5,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InvalidState))

	completed := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusCompleted)
	_, err = srv.Rate(context.Background(), uuid.New(), &request.CreateRatingRequest{
		BookingID: completed.ID.String(),
		Score:     5,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestRateOncePerBooking(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusCompleted)

	_, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     5,
	})
	require.NoError(t, err)

	_, err = srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     3,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Conflict))
}

func TestRatingReply(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusCompleted)
	resp, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
		BookingID: booking.ID.String(),
		Score:     4,
	})
	require.NoError(t, err)
	ratingID := uuid.MustParse(resp.ID)

	err = srv.Reply(context.Background(), uuid.New(), ratingID, &request.ReplyRatingRequest{Reply: "Thanks!"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))

	err = srv.Reply(context.Background(), providerUser.ID, ratingID, &request.ReplyRatingRequest{Reply: "Thanks for having me!"})
	require.NoError(t, err)

	rating, _ := env.ratings.FindByID(context.Background(), ratingID)
	require.NotNil(t, rating.ProviderReply)
	assert.Equal(t, "Thanks for having me!", *rating.ProviderReply)
	assert.NotNil(t, rating.RepliedAt)
}

func TestProviderStats(t *testing.T) {
	env := newTestEnv()
	client, _, provider, service := env.seedMarketplace()
	srv := NewRatingService(env.repo, zap.NewNop())

	for i, score := range []int{5, 4, 4} {
		booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(9+i), entity.BookingStatusCompleted)
		_, err := srv.Rate(context.Background(), client.ID, &request.CreateRatingRequest{
			BookingID: booking.ID.String(),
			Score:     score,
		})
		require.NoError(t, err)
	}

	stats, err := srv.ProviderStats(context.Background(), provider.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRatings)
	assert.InDelta(t, 4.3, stats.AverageScore, 0.001)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.ScoreBuckets)
}

func TestProviderStatsEmpty(t *testing.T) {
	env := newTestEnv()
	srv := NewRatingService(env.repo, zap.NewNop())

	stats, err := srv.ProviderStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRatings)
	assert.Zero(t, stats.AverageScore)
}
