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

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
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

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.Wrap(apperrors.Internal, "hash password", err)
	}

	role := entity.UserRole(req.Role)
	if role == entity.RoleProvider && (req.Specialty == nil || *req.Specialty == "") {
		return nil, apperrors.New(apperrors.Validation, "specialty is required for provider registration")
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

	session, err := s.createSession(ctx, user.ID, "", "")
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.New(apperrors.Unauthorized, "invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.New(apperrors.Unauthorized, "account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.log.Warn("Failed to stamp last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.repo.Session.Revoke(ctx, token)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.NotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (*entity.Session, error) {
	now := time.Now().UTC()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now},
		UserID:     userID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
