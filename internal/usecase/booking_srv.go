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
	"go.uber.org/zap"
)

// Working hours for availability: hourly slots from 08:00 up to and
// including 17:00.
const (
	slotFirstHour = 8
	slotLastHour  = 17
)

type BookingService interface {
	Create(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Confirm(ctx context.Context, providerUserID, bookingID uuid.UUID) (*response.BookingResponse, error)
	Decline(ctx context.Context, providerUserID, bookingID uuid.UUID, req *request.DeclineBookingRequest) error
	CancelByClient(ctx context.Context, clientID, bookingID uuid.UUID, req *request.CancelBookingRequest) error
	Complete(ctx context.Context, providerUserID, bookingID uuid.UUID) error
	AvailabilitySlots(ctx context.Context, providerID uuid.UUID, date string) (*response.AvailabilityResponse, error)
	GetByID(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error)
	ListForClient(ctx context.Context, clientID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListForProvider(ctx context.Context, providerUserID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, clientID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "invalid service ID")
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "scheduled_at must be RFC 3339")
	}
	scheduledAt = scheduledAt.UTC()
	if !scheduledAt.After(time.Now().UTC()) {
		return nil, apperrors.New(apperrors.Validation, "scheduled_at must be in the future")
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.Active {
		return nil, apperrors.New(apperrors.NotFound, "service not found")
	}

	provider, err := s.repo.Provider.FindByID(ctx, service.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.NotFound, "provider not found")
	}
	if provider.UserID == clientID {
		return nil, apperrors.New(apperrors.Validation, "cannot book your own service")
	}

	modality := entity.BookingModality(req.Modality)
	if modality == entity.ModalityOnline && !provider.OnlineCapable {
		return nil, apperrors.New(apperrors.Validation, "provider does not offer online appointments")
	}

	taken, err := s.repo.Booking.ExistsActiveAt(ctx, provider.ID, scheduledAt)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.New(apperrors.Conflict, "time slot is already booked")
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		Base:        entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		ClientID:    clientID,
		ProviderID:  provider.ID,
		ServiceID:   service.ID,
		ScheduledAt: scheduledAt,
		Status:      entity.BookingStatusPending,
		Notes:       req.Notes,
		Modality:    modality,
	}
	if modality == entity.ModalityInPerson {
		booking.ServiceAddress = req.ServiceAddress
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Someone won the slot between the pre-check and the insert.
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.New(apperrors.Conflict, "time slot is already booked")
		}
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("provider_id", provider.ID.String()),
		zap.Time("scheduled_at", scheduledAt),
	)

	link := bookingLink(booking.ID)
	notify(ctx, s.repo, s.log, provider.UserID, entity.NotificationBooking,
		"New booking request",
		fmt.Sprintf("You have a new booking request for %s on %s.", service.Title, scheduledAt.Format("02 Jan 2006 15:04")),
		&link)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Confirm(ctx context.Context, providerUserID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, _, err := s.bookingForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, apperrors.Newf(apperrors.InvalidState, "booking is %s, only pending bookings can be confirmed", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = entity.BookingStatusConfirmed

	link := bookingLink(booking.ID)
	notify(ctx, s.repo, s.log, booking.ClientID, entity.NotificationBooking,
		"Booking confirmed",
		fmt.Sprintf("Your booking for %s was confirmed.", booking.ScheduledAt.Format("02 Jan 2006 15:04")),
		&link)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Decline(ctx context.Context, providerUserID, bookingID uuid.UUID, req *request.DeclineBookingRequest) error {
	booking, _, err := s.bookingForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return err
	}

	if booking.Status != entity.BookingStatusPending {
		return apperrors.Newf(apperrors.InvalidState, "booking is %s, only pending bookings can be declined", booking.Status)
	}

	message := "Your booking request was declined."
	booking.Status = entity.BookingStatusCancelled
	if req != nil && req.Reason != nil && *req.Reason != "" {
		booking.Notes = prefixNotes(booking.Notes, "Declined: "+*req.Reason)
		message = fmt.Sprintf("Your booking request was declined: %s", *req.Reason)
	}
	booking.UpdatedAt = time.Now().UTC()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return err
	}

	notify(ctx, s.repo, s.log, booking.ClientID, entity.NotificationBooking, "Booking declined", message, nil)
	return nil
}

func (s *bookingService) CancelByClient(ctx context.Context, clientID, bookingID uuid.UUID, req *request.CancelBookingRequest) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperrors.New(apperrors.NotFound, "booking not found")
	}
	if booking.ClientID != clientID {
		return apperrors.New(apperrors.Unauthorized, "booking belongs to another client")
	}
	if booking.Status.Terminal() {
		return apperrors.Newf(apperrors.InvalidState, "booking is already %s", booking.Status)
	}

	booking.Status = entity.BookingStatusCancelled
	if req != nil && req.Reason != nil && *req.Reason != "" {
		booking.Notes = prefixNotes(booking.Notes, "Cancelled: "+*req.Reason)
	}
	booking.UpdatedAt = time.Now().UTC()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return err
	}

	provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
	if err != nil || provider == nil {
		s.log.Warn("Provider lookup failed after cancellation", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil
	}

	notify(ctx, s.repo, s.log, provider.UserID, entity.NotificationBooking,
		"Booking cancelled",
		fmt.Sprintf("The booking for %s was cancelled by the client.", booking.ScheduledAt.Format("02 Jan 2006 15:04")),
		nil)
	return nil
}

func (s *bookingService) Complete(ctx context.Context, providerUserID, bookingID uuid.UUID) error {
	booking, _, err := s.bookingForProvider(ctx, providerUserID, bookingID)
	if err != nil {
		return err
	}

	if booking.Status != entity.BookingStatusConfirmed && booking.Status != entity.BookingStatusInProgress {
		return apperrors.Newf(apperrors.InvalidState, "booking is %s, only confirmed or in-progress bookings can be completed", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCompleted); err != nil {
		return err
	}

	link := fmt.Sprintf("/bookings/%s/rating", booking.ID.String())
	notify(ctx, s.repo, s.log, booking.ClientID, entity.NotificationBooking,
		"Service completed",
		"Your appointment is complete. How was it? Leave a rating.",
		&link)
	return nil
}

// AvailabilitySlots lists the provider's free and occupied hourly slots for
// one calendar day.
func (s *bookingService) AvailabilitySlots(ctx context.Context, providerID uuid.UUID, date string) (*response.AvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "date must be YYYY-MM-DD")
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	active, err := s.repo.Booking.FindActiveBetween(ctx, providerID, from, to)
	if err != nil {
		return nil, err
	}

	takenHours := make(map[int]bool, len(active))
	for _, booking := range active {
		takenHours[booking.ScheduledAt.UTC().Hour()] = true
	}

	resp := &response.AvailabilityResponse{
		Date:      date,
		Available: []string{},
		Occupied:  []string{},
	}
	for hour := slotFirstHour; hour <= slotLastHour; hour++ {
		slot := fmt.Sprintf("%02d:00", hour)
		if takenHours[hour] {
			resp.Occupied = append(resp.Occupied, slot)
		} else {
			resp.Available = append(resp.Available, slot)
		}
	}

	return resp, nil
}

func (s *bookingService) GetByID(ctx context.Context, userID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.NotFound, "booking not found")
	}

	if booking.ClientID != userID {
		provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
		if err != nil {
			return nil, err
		}
		if provider == nil || provider.UserID != userID {
			return nil, apperrors.New(apperrors.Unauthorized, "booking belongs to another user")
		}
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingWithPaymentToResponse(booking, payment)
	return &resp, nil
}

func (s *bookingService) ListForClient(ctx context.Context, clientID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	status := entity.BookingStatus(req.Status)

	bookings, err := s.repo.Booking.ListByClient(ctx, clientID, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Booking.CountByClient(ctx, clientID, status)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(bookingsToResponses(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) ListForProvider(ctx context.Context, providerUserID uuid.UUID, req *request.ListBookingsRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.Unauthorized, "caller is not a provider")
	}

	status := entity.BookingStatus(req.Status)

	bookings, err := s.repo.Booking.ListByProvider(ctx, provider.ID, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Booking.CountByProvider(ctx, provider.ID, status)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(bookingsToResponses(bookings), req.Page, req.Limit(), total), nil
}

// bookingForProvider loads a booking and verifies the caller is the provider
// it belongs to.
func (s *bookingService) bookingForProvider(ctx context.Context, providerUserID, bookingID uuid.UUID) (*entity.Booking, *entity.Provider, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, apperrors.New(apperrors.NotFound, "booking not found")
	}

	provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	if provider == nil || provider.UserID != providerUserID {
		return nil, nil, apperrors.New(apperrors.Unauthorized, "booking belongs to another provider")
	}

	return booking, provider, nil
}

func bookingsToResponses(bookings []*entity.Booking) []response.BookingResponse {
	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, response.BookingToResponse(booking))
	}
	return items
}

func bookingLink(id uuid.UUID) string {
	return fmt.Sprintf("/bookings/%s", id.String())
}

func prefixNotes(notes *string, prefix string) *string {
	combined := prefix
	if notes != nil && *notes != "" {
		combined = prefix + "\n" + *notes
	}
	return &combined
}
