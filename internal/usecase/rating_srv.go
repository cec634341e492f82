package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
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

type RatingService interface {
	Rate(ctx context.Context, clientID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	Reply(ctx context.Context, providerUserID, ratingID uuid.UUID, req *request.ReplyRatingRequest) error
	ProviderStats(ctx context.Context, providerID uuid.UUID) (*response.ProviderStatsResponse, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]response.RatingResponse, error)
	ListForClient(ctx context.Context, clientID uuid.UUID) ([]response.RatingResponse, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) Rate(ctx context.Context, clientID uuid.UUID, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "invalid booking ID")
	}

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
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperrors.Newf(apperrors.InvalidState, "booking is %s, only completed bookings can be rated", booking.Status)
	}

	existing, err := s.repo.Rating.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "booking is already rated")
	}

	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: time.Now().UTC()},
		BookingID:  booking.ID,
		ClientID:   clientID,
		ProviderID: booking.ProviderID,
		Score:      req.Score,
		Comment:    req.Comment,
		Anonymous:  req.Anonymous,
	}

	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrAlreadyRated) {
			return nil, apperrors.New(apperrors.Conflict, "booking is already rated")
		}
		return nil, err
	}

	clientName := "a client"
	client, err := s.repo.User.FindByID(ctx, clientID)
	if err == nil && client != nil {
		clientName = client.Name
	}

	author := clientName
	if rating.Anonymous {
		author = "a client"
	}

	provider, err := s.repo.Provider.FindByID(ctx, booking.ProviderID)
	if err == nil && provider != nil {
		notify(ctx, s.repo, s.log, provider.UserID, entity.NotificationRating,
			"New rating",
			fmt.Sprintf("You received a %d-star rating from %s.", rating.Score, author),
			nil)
	}

	resp := response.RatingToResponse(rating, clientName)
	return &resp, nil
}

func (s *ratingService) Reply(ctx context.Context, providerUserID, ratingID uuid.UUID, req *request.ReplyRatingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	rating, err := s.repo.Rating.FindByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating == nil {
		return apperrors.New(apperrors.NotFound, "rating not found")
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return err
	}
	if provider == nil || provider.ID != rating.ProviderID {
		return apperrors.New(apperrors.Unauthorized, "rating targets another provider")
	}

	if err := s.repo.Rating.SetReply(ctx, rating.ID, req.Reply, time.Now().UTC()); err != nil {
		return err
	}

	notify(ctx, s.repo, s.log, rating.ClientID, entity.NotificationRating,
		"Provider replied to your rating",
		req.Reply,
		nil)
	return nil
}

// ProviderStats aggregates a provider's ratings: average rounded to one
// decimal plus per-score bucket counts.
func (s *ratingService) ProviderStats(ctx context.Context, providerID uuid.UUID) (*response.ProviderStatsResponse, error) {
	ratings, err := s.repo.Rating.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	buckets := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, rating := range ratings {
		buckets[rating.Score]++
		sum += rating.Score
	}

	average := 0.0
	if len(ratings) > 0 {
		average = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	return &response.ProviderStatsResponse{
		ProviderID:   providerID.String(),
		AverageScore: average,
		TotalRatings: len(ratings),
		ScoreBuckets: buckets,
	}, nil
}

func (s *ratingService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]response.RatingResponse, error) {
	ratings, err := s.repo.Rating.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return s.ratingsToResponses(ctx, ratings), nil
}

func (s *ratingService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]response.RatingResponse, error) {
	ratings, err := s.repo.Rating.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.ratingsToResponses(ctx, ratings), nil
}

func (s *ratingService) ratingsToResponses(ctx context.Context, ratings []*entity.Rating) []response.RatingResponse {
	items := make([]response.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		clientName := "a client"
		if !rating.Anonymous {
			if client, err := s.repo.User.FindByID(ctx, rating.ClientID); err == nil && client != nil {
				clientName = client.Name
			}
		}
		items = append(items, response.RatingToResponse(rating, clientName))
	}
	return items
}
