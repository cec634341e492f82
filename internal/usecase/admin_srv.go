package usecase

import (
	"context"
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

const weeklyBookingsDays = 7

type AdminService interface {
	// PlatformStats returns the dashboard counters: user, provider and
	// service totals, today's bookings, open and urgent tickets, and the
	// current month's settled revenue.
	PlatformStats(ctx context.Context) (*response.PlatformStatsResponse, error)
	WeeklyBookings(ctx context.Context) (*response.WeeklyBookingsResponse, error)
	CreateUser(ctx context.Context, req *request.AdminCreateUserRequest) (*response.UserResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAdminService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AdminService {
	return &adminService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) PlatformStats(ctx context.Context) (*response.PlatformStatsResponse, error) {
	stats := &response.PlatformStatsResponse{}

	var err error
	if stats.TotalUsers, err = s.repo.User.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProviders, err = s.repo.Provider.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalServices, err = s.repo.Service.Count(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if stats.BookingsToday, err = s.repo.Booking.CountScheduledBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}

	if stats.OpenTickets, err = s.repo.Ticket.CountByStatus(ctx, entity.TicketOpen); err != nil {
		return nil, err
	}
	if stats.UrgentTickets, err = s.repo.Ticket.CountOpenByPriority(ctx, entity.PriorityUrgent); err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if stats.MonthRevenue, stats.MonthFees, err = s.repo.Payment.RevenueSince(ctx, monthStart); err != nil {
		return nil, err
	}

	return stats, nil
}

// WeeklyBookings returns one bucket per day for the trailing week, today
// included; days without bookings come back with a zero count.
func (s *adminService) WeeklyBookings(ctx context.Context) (*response.WeeklyBookingsResponse, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := dayStart.AddDate(0, 0, -(weeklyBookingsDays - 1))
	to := dayStart.AddDate(0, 0, 1)

	perDay, err := s.repo.Booking.CountPerDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(perDay))
	for _, bucket := range perDay {
		counts[bucket.Day.Format("2006-01-02")] = bucket.Count
	}

	resp := &response.WeeklyBookingsResponse{Days: make([]response.BookingsPerDayResponse, 0, weeklyBookingsDays)}
	for i := 0; i < weeklyBookingsDays; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		resp.Days = append(resp.Days, response.BookingsPerDayResponse{
			Day:   day,
			Count: counts[day],
		})
	}

	return resp, nil
}

func (s *adminService) CreateUser(ctx context.Context, req *request.AdminCreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.Conflict, "email already registered")
	}

	role := entity.UserRole(req.Role)
	if role == entity.RoleProvider && (req.Specialty == nil || *req.Specialty == "") {
		return nil, apperrors.New(apperrors.Validation, "specialty is required for provider accounts")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.Internal, "hash password", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base:         entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		City:         req.City,
		Role:         role,
		IsActive:     true,
	}

	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		if err := r.User.Create(ctx, user); err != nil {
			return err
		}

		if role != entity.RoleProvider {
			return nil
		}

		var categoryID *uuid.UUID
		if req.CategoryID != nil {
			id, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				return apperrors.New(apperrors.Validation, "invalid category ID")
			}
			categoryID = &id
		}

		provider := &entity.Provider{
			Base:             entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
			UserID:           user.ID,
			CategoryID:       categoryID,
			Specialty:        *req.Specialty,
			FeeRate:          decimal.NewFromFloat(s.config.Platform.DefaultFeeRate),
			Available:        true,
			AvailableBalance: decimal.Zero,
			TotalEarned:      decimal.Zero,
		}
		return r.Provider.Create(ctx, provider)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("User created by staff",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
