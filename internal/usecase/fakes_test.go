package usecase

import (
	"context"
	"sort"
	"time"

	"service-marketplace/internal/data/entity"
	"service-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. A Repository assembled from these has no pool,
// so WithinTx runs the callback directly.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if user, ok := f.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token.String()] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	if session, ok := f.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*entity.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[uuid.UUID]*entity.Provider)}
}

func (f *fakeProviderRepo) Create(_ context.Context, provider *entity.Provider) error {
	f.providers[provider.ID] = provider
	return nil
}

func (f *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Provider, error) {
	return f.providers[id], nil
}

func (f *fakeProviderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeProviderRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Provider, error) {
	for _, provider := range f.providers {
		if provider.UserID == userID {
			return provider, nil
		}
	}
	return nil, nil
}

func (f *fakeProviderRepo) UpdateFeeRate(_ context.Context, id uuid.UUID, rate decimal.Decimal) error {
	if provider, ok := f.providers[id]; ok {
		provider.FeeRate = rate
	}
	return nil
}

func (f *fakeProviderRepo) UpdateBalance(_ context.Context, id uuid.UUID, balance, totalEarned decimal.Decimal) error {
	if provider, ok := f.providers[id]; ok {
		provider.AvailableBalance = balance
		provider.TotalEarned = totalEarned
	}
	return nil
}

func (f *fakeProviderRepo) Search(_ context.Context, categoryID *uuid.UUID, city string, limit, offset int) ([]*entity.Provider, error) {
	var result []*entity.Provider
	for _, provider := range f.providers {
		if categoryID != nil && (provider.CategoryID == nil || *provider.CategoryID != *categoryID) {
			continue
		}
		result = append(result, provider)
	}
	return result, nil
}

func (f *fakeProviderRepo) CountSearch(_ context.Context, categoryID *uuid.UUID, city string) (int64, error) {
	providers, _ := f.Search(context.Background(), categoryID, city, 0, 0)
	return int64(len(providers)), nil
}

func (f *fakeProviderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.providers)), nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) ListActive(_ context.Context) ([]*entity.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (f *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) Update(_ context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if service, ok := f.services[id]; ok {
		service.Active = false
	}
	return nil
}

func (f *fakeServiceRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.Service, error) {
	var result []*entity.Service
	for _, service := range f.services {
		if service.ProviderID == providerID {
			result = append(result, service)
		}
	}
	return result, nil
}

func (f *fakeServiceRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.services)), nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) activeAt(providerID uuid.UUID, at time.Time) bool {
	for _, booking := range f.bookings {
		if booking.ProviderID == providerID && booking.ScheduledAt.Equal(at) && !booking.Status.Terminal() {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if f.activeAt(booking.ProviderID, booking.ScheduledAt) {
		return repository.ErrSlotTaken
	}
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	if booking, ok := f.bookings[bookingID]; ok {
		booking.Status = status
	}
	return nil
}

func (f *fakeBookingRepo) ExistsActiveAt(_ context.Context, providerID uuid.UUID, at time.Time) (bool, error) {
	return f.activeAt(providerID, at), nil
}

func (f *fakeBookingRepo) FindActiveBetween(_ context.Context, providerID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.ProviderID != providerID || booking.Status.Terminal() {
			continue
		}
		if !booking.ScheduledAt.Before(from) && booking.ScheduledAt.Before(to) {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) ListByClient(_ context.Context, clientID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.ClientID == clientID && (status == "" || booking.Status == status) {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByClient(ctx context.Context, clientID uuid.UUID, status entity.BookingStatus) (int64, error) {
	bookings, _ := f.ListByClient(ctx, clientID, status, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) ListByProvider(_ context.Context, providerID uuid.UUID, status entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.ProviderID == providerID && (status == "" || booking.Status == status) {
			result = append(result, booking)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByProvider(ctx context.Context, providerID uuid.UUID, status entity.BookingStatus) (int64, error) {
	bookings, _ := f.ListByProvider(ctx, providerID, status, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) CountScheduledBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, booking := range f.bookings {
		if !booking.ScheduledAt.Before(from) && booking.ScheduledAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) CountPerDay(_ context.Context, from, to time.Time) ([]*entity.BookingsPerDay, error) {
	counts := make(map[time.Time]int64)
	for _, booking := range f.bookings {
		if booking.ScheduledAt.Before(from) || !booking.ScheduledAt.Before(to) {
			continue
		}
		counts[booking.ScheduledAt.Truncate(24*time.Hour)]++
	}

	var result []*entity.BookingsPerDay
	for day, count := range counts {
		result = append(result, &entity.BookingsPerDay{Day: day, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day.Before(result[j].Day) })
	return result, nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, payment := range f.payments {
		if payment.BookingID == bookingID {
			return payment, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) MarkPaid(_ context.Context, id uuid.UUID, method, transactionID string, paidAt time.Time) error {
	payment, ok := f.payments[id]
	if !ok || payment.Status != entity.PaymentStatusPending {
		return repository.ErrAlreadySettled
	}
	payment.Status = entity.PaymentStatusPaid
	payment.Method = &method
	payment.TransactionID = &transactionID
	payment.PaidAt = &paidAt
	payment.UpdatedAt = paidAt
	return nil
}

func (f *fakePaymentRepo) RevenueSince(_ context.Context, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	gross, fees := decimal.Zero, decimal.Zero
	for _, payment := range f.payments {
		if payment.Status != entity.PaymentStatusPaid || payment.PaidAt == nil || payment.PaidAt.Before(since) {
			continue
		}
		gross = gross.Add(payment.Total)
		fees = fees.Add(payment.FeeAmount)
	}
	return gross, fees, nil
}

type fakeLedgerRepo struct {
	entries []*entity.LedgerEntry
}

func (f *fakeLedgerRepo) Create(_ context.Context, entry *entity.LedgerEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLedgerRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.LedgerEntry, error) {
	var result []*entity.LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ProviderID == providerID {
			result = append(result, f.entries[i])
		}
	}
	return result, nil
}

type fakeRatingRepo struct {
	ratings map[uuid.UUID]*entity.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[uuid.UUID]*entity.Rating)}
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *entity.Rating) error {
	for _, existing := range f.ratings {
		if existing.BookingID == rating.BookingID {
			return repository.ErrAlreadyRated
		}
	}
	f.ratings[rating.ID] = rating
	return nil
}

func (f *fakeRatingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Rating, error) {
	return f.ratings[id], nil
}

func (f *fakeRatingRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	for _, rating := range f.ratings {
		if rating.BookingID == bookingID {
			return rating, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) SetReply(_ context.Context, id uuid.UUID, reply string, at time.Time) error {
	if rating, ok := f.ratings[id]; ok {
		rating.ProviderReply = &reply
		rating.RepliedAt = &at
	}
	return nil
}

func (f *fakeRatingRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.Rating, error) {
	var result []*entity.Rating
	for _, rating := range f.ratings {
		if rating.ProviderID == providerID {
			result = append(result, rating)
		}
	}
	return result, nil
}

func (f *fakeRatingRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*entity.Rating, error) {
	var result []*entity.Rating
	for _, rating := range f.ratings {
		if rating.ClientID == clientID {
			result = append(result, rating)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*entity.Notification
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*entity.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if f.failCreate {
		return context.DeadlineExceeded
	}
	f.notifications[notification.ID] = notification
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	return f.notifications[id], nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var result []*entity.Notification
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	notifications, _ := f.ListByUser(ctx, userID, 0, 0)
	return int64(len(notifications)), nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, notification := range f.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID, at time.Time) error {
	if notification, ok := f.notifications[id]; ok {
		notification.Read = true
		notification.ReadAt = &at
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID, at time.Time) error {
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			notification.Read = true
			notification.ReadAt = &at
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.notifications, id)
	return nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*entity.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*entity.Conversation)}
}

func (f *fakeConversationRepo) Create(_ context.Context, conversation *entity.Conversation) error {
	f.conversations[conversation.ID] = conversation
	return nil
}

func (f *fakeConversationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Conversation, error) {
	return f.conversations[id], nil
}

func (f *fakeConversationRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Conversation, error) {
	for _, conversation := range f.conversations {
		if conversation.BookingID == bookingID {
			return conversation, nil
		}
	}
	return nil, nil
}

func (f *fakeConversationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var result []*entity.Conversation
	for _, conversation := range f.conversations {
		if conversation.ClientID == userID || conversation.ProviderUserID == userID {
			result = append(result, conversation)
		}
	}
	return result, nil
}

func (f *fakeConversationRepo) TouchLastMessage(_ context.Context, id uuid.UUID, at time.Time) error {
	if conversation, ok := f.conversations[id]; ok {
		conversation.LastMessageAt = at
	}
	return nil
}

type fakeMessageRepo struct {
	messages      []*entity.Message
	conversations *fakeConversationRepo
}

func (f *fakeMessageRepo) Create(_ context.Context, message *entity.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	var result []*entity.Message
	for _, message := range f.messages {
		if message.ConversationID == conversationID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) CountByConversation(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	messages, _ := f.ListByConversation(ctx, conversationID, 0, 0)
	return int64(len(messages)), nil
}

func (f *fakeMessageRepo) MarkConversationRead(_ context.Context, conversationID, readerID uuid.UUID) error {
	for _, message := range f.messages {
		if message.ConversationID == conversationID && message.SenderID != readerID {
			message.Read = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) CountUnreadForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, message := range f.messages {
		if message.Read || message.SenderID == userID {
			continue
		}
		conversation := f.conversations.conversations[message.ConversationID]
		if conversation == nil {
			continue
		}
		if conversation.ClientID == userID || conversation.ProviderUserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeTicketRepo struct {
	tickets map[uuid.UUID]*entity.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*entity.Ticket)}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *entity.Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Ticket, error) {
	var result []*entity.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) ListByStatus(_ context.Context, status entity.TicketStatus, limit, offset int) ([]*entity.Ticket, error) {
	var result []*entity.Ticket
	for _, ticket := range f.tickets {
		if status == "" || ticket.Status == status {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) CountByStatus(ctx context.Context, status entity.TicketStatus) (int64, error) {
	tickets, _ := f.ListByStatus(ctx, status, 0, 0)
	return int64(len(tickets)), nil
}

func (f *fakeTicketRepo) CountOpenByPriority(_ context.Context, priority entity.TicketPriority) (int64, error) {
	var count int64
	for _, ticket := range f.tickets {
		if ticket.Status == entity.TicketOpen && ticket.Priority == priority {
			count++
		}
	}
	return count, nil
}

type fakeTicketReplyRepo struct {
	replies []*entity.TicketReply
}

func (f *fakeTicketReplyRepo) Create(_ context.Context, reply *entity.TicketReply) error {
	f.replies = append(f.replies, reply)
	return nil
}

func (f *fakeTicketReplyRepo) ListByTicket(_ context.Context, ticketID uuid.UUID) ([]*entity.TicketReply, error) {
	var result []*entity.TicketReply
	for _, reply := range f.replies {
		if reply.TicketID == ticketID {
			result = append(result, reply)
		}
	}
	return result, nil
}

// testEnv bundles the fakes with a Repository wired from them.
type testEnv struct {
	repo          *repository.Repository
	users         *fakeUserRepo
	sessions      *fakeSessionRepo
	providers     *fakeProviderRepo
	categories    *fakeCategoryRepo
	services      *fakeServiceRepo
	bookings      *fakeBookingRepo
	payments      *fakePaymentRepo
	ledger        *fakeLedgerRepo
	ratings       *fakeRatingRepo
	notifications *fakeNotificationRepo
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	tickets       *fakeTicketRepo
	ticketReplies *fakeTicketReplyRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		sessions:      newFakeSessionRepo(),
		providers:     newFakeProviderRepo(),
		categories:    &fakeCategoryRepo{},
		services:      newFakeServiceRepo(),
		bookings:      newFakeBookingRepo(),
		payments:      newFakePaymentRepo(),
		ledger:        &fakeLedgerRepo{},
		ratings:       newFakeRatingRepo(),
		notifications: newFakeNotificationRepo(),
		conversations: newFakeConversationRepo(),
		tickets:       newFakeTicketRepo(),
		ticketReplies: &fakeTicketReplyRepo{},
	}
	env.messages = &fakeMessageRepo{conversations: env.conversations}

	env.repo = &repository.Repository{
		User:         env.users,
		Session:      env.sessions,
		Provider:     env.providers,
		Category:     env.categories,
		Service:      env.services,
		Booking:      env.bookings,
		Payment:      env.payments,
		Ledger:       env.ledger,
		Rating:       env.ratings,
		Notification: env.notifications,
		Conversation: env.conversations,
		Message:      env.messages,
		Ticket:       env.tickets,
		TicketReply:  env.ticketReplies,
	}

	return env
}

// seedMarketplace creates a client, a provider user with profile, and an
// active service priced 100.00 with a 10% fee rate.
func (env *testEnv) seedMarketplace() (client *entity.User, providerUser *entity.User, provider *entity.Provider, service *entity.Service) {
	now := time.Now().UTC()

	client = &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Alice Client",
		Email:    "alice@example.com",
		Role:     entity.RoleClient,
		IsActive: true,
	}
	providerUser = &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Bob Provider",
		Email:    "bob@example.com",
		Role:     entity.RoleProvider,
		IsActive: true,
	}
	env.users.users[client.ID] = client
	env.users.users[providerUser.ID] = providerUser

	provider = &entity.Provider{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:           providerUser.ID,
		Specialty:        "Electrician",
		FeeRate:          decimal.NewFromFloat(10.0),
		Available:        true,
		OnlineCapable:    true,
		AvailableBalance: decimal.Zero,
		TotalEarned:      decimal.Zero,
	}
	env.providers.providers[provider.ID] = provider

	service = &entity.Service{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ProviderID:      provider.ID,
		Title:           "Wiring inspection",
		Description:     "Full home wiring inspection",
		Level:           "standard",
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(100),
		Active:          true,
	}
	env.services.services[service.ID] = service

	return client, providerUser, provider, service
}

func (env *testEnv) seedBooking(clientID, providerID, serviceID uuid.UUID, at time.Time, status entity.BookingStatus) *entity.Booking {
	now := time.Now().UTC()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ClientID:    clientID,
		ProviderID:  providerID,
		ServiceID:   serviceID,
		ScheduledAt: at,
		Status:      status,
		Modality:    entity.ModalityInPerson,
	}
	env.bookings.bookings[booking.ID] = booking
	return booking
}
