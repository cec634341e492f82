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

func TestStartConversation(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewChatService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusConfirmed)

	resp, err := srv.StartConversation(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID.String(), resp.BookingID)
	assert.Equal(t, providerUser.ID.String(), resp.ProviderID)

	// Second call returns the existing conversation.
	again, err := srv.StartConversation(context.Background(), providerUser.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Len(t, env.conversations.conversations, 1)

	// Outsiders cannot open it.
	_, err = srv.StartConversation(context.Background(), uuid.New(), booking.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestSendMessage(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewChatService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusConfirmed)
	conversation, err := srv.StartConversation(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	conversationID := uuid.MustParse(conversation.ID)

	resp, err := srv.SendMessage(context.Background(), client.ID, conversationID, &request.SendMessageRequest{Body: "Hi, is 10am still good?"})
	require.NoError(t, err)
	assert.Equal(t, client.ID.String(), resp.SenderID)
	assert.Equal(t, entity.MessageText, resp.Kind)

	// The message bumps last_message_at and notifies the other party.
	stored := env.conversations.conversations[conversationID]
	assert.Equal(t, resp.CreatedAt, stored.LastMessageAt)
	unread, _ := env.notifications.CountUnread(context.Background(), providerUser.ID)
	assert.EqualValues(t, 1, unread)

	_, err = srv.SendMessage(context.Background(), uuid.New(), conversationID, &request.SendMessageRequest{Body: "intruding"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.Unauthorized))
}

func TestListMessagesMarksRead(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewChatService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusConfirmed)
	conversation, err := srv.StartConversation(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)
	conversationID := uuid.MustParse(conversation.ID)

	_, err = srv.SendMessage(context.Background(), client.ID, conversationID, &request.SendMessageRequest{Body: "first"})
	require.NoError(t, err)
	_, err = srv.SendMessage(context.Background(), client.ID, conversationID, &request.SendMessageRequest{Body: "second"})
	require.NoError(t, err)

	unread, err := srv.UnreadCount(context.Background(), providerUser.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	page, err := srv.ListMessages(context.Background(), providerUser.ID, conversationID, &request.PaginatedRequest{Page: 1, PerPage: 50})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	// Reading clears the other party's unread counter, not the sender's view.
	unread, err = srv.UnreadCount(context.Background(), providerUser.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestListConversations(t *testing.T) {
	env := newTestEnv()
	client, providerUser, provider, service := env.seedMarketplace()
	srv := NewChatService(env.repo, zap.NewNop())

	booking := env.seedBooking(client.ID, provider.ID, service.ID, tomorrowAt(10), entity.BookingStatusConfirmed)
	_, err := srv.StartConversation(context.Background(), client.ID, booking.ID)
	require.NoError(t, err)

	for _, userID := range []uuid.UUID{client.ID, providerUser.ID} {
		conversations, err := srv.ListConversations(context.Background(), userID)
		require.NoError(t, err)
		assert.Len(t, conversations, 1)
	}

	conversations, err := srv.ListConversations(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, conversations)
}
