package usecase

import (
	"context"
	"math"
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

type CatalogService interface {
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
	SearchProviders(ctx context.Context, req *request.SearchProvidersRequest) (*response.PaginatedResponse[response.ProviderResponse], error)
	GetProvider(ctx context.Context, providerID uuid.UUID) (*response.ProviderDetailResponse, error)
	CreateService(ctx context.Context, providerUserID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, providerUserID, serviceID uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeactivateService(ctx context.Context, providerUserID, serviceID uuid.UUID) error
	ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, response.CategoryToResponse(category))
	}
	return items, nil
}

func (s *catalogService) SearchProviders(ctx context.Context, req *request.SearchProvidersRequest) (*response.PaginatedResponse[response.ProviderResponse], error) {
	var categoryID *uuid.UUID
	if req.CategorySlug != "" {
		category, err := s.repo.Category.FindBySlug(ctx, req.CategorySlug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperrors.New(apperrors.NotFound, "category not found")
		}
		categoryID = &category.ID
	}

	providers, err := s.repo.Provider.Search(ctx, categoryID, req.City, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Provider.CountSearch(ctx, categoryID, req.City)
	if err != nil {
		return nil, err
	}

	items := make([]response.ProviderResponse, 0, len(providers))
	for _, provider := range providers {
		items = append(items, s.providerToResponse(ctx, provider))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *catalogService) GetProvider(ctx context.Context, providerID uuid.UUID) (*response.ProviderDetailResponse, error) {
	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.NotFound, "provider not found")
	}

	services, err := s.repo.Service.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	resp := &response.ProviderDetailResponse{
		ProviderResponse: s.providerToResponse(ctx, provider),
		Services:         []response.ServiceResponse{},
	}
	for _, service := range services {
		if service.Active {
			resp.Services = append(resp.Services, response.ServiceToResponse(service))
		}
	}

	return resp, nil
}

func (s *catalogService) CreateService(ctx context.Context, providerUserID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.New(apperrors.Unauthorized, "caller is not a provider")
	}

	level := req.Level
	if level == "" {
		level = "standard"
	}

	now := time.Now().UTC()
	service := &entity.Service{
		Base:            entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		ProviderID:      provider.ID,
		Title:           req.Title,
		Description:     req.Description,
		Level:           level,
		DurationMinutes: req.DurationMinutes,
		Price:           decimal.NewFromFloat(req.Price),
		Active:          true,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, providerUserID, serviceID uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.Newf(apperrors.Validation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.serviceForProvider(ctx, providerUserID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Level != nil {
		service.Level = *req.Level
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	service.UpdatedAt = time.Now().UTC()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) DeactivateService(ctx context.Context, providerUserID, serviceID uuid.UUID) error {
	service, err := s.serviceForProvider(ctx, providerUserID, serviceID)
	if err != nil {
		return err
	}

	return s.repo.Service.Deactivate(ctx, service.ID)
}

func (s *catalogService) ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, response.ServiceToResponse(service))
	}
	return items, nil
}

func (s *catalogService) serviceForProvider(ctx context.Context, providerUserID, serviceID uuid.UUID) (*entity.Service, error) {
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperrors.New(apperrors.NotFound, "service not found")
	}

	provider, err := s.repo.Provider.FindByUserID(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.ID != service.ProviderID {
		return nil, apperrors.New(apperrors.Unauthorized, "service belongs to another provider")
	}

	return service, nil
}

func (s *catalogService) providerToResponse(ctx context.Context, provider *entity.Provider) response.ProviderResponse {
	resp := response.ProviderToResponse(provider)

	if user, err := s.repo.User.FindByID(ctx, provider.UserID); err == nil && user != nil {
		resp.Name = user.Name
	}

	ratings, err := s.repo.Rating.ListByProvider(ctx, provider.ID)
	if err != nil {
		s.log.Warn("Failed to load ratings for provider", zap.Error(err), zap.String("provider_id", provider.ID.String()))
		return resp
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Score
	}
	resp.TotalRatings = len(ratings)
	if len(ratings) > 0 {
		resp.AverageScore = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	return resp
}
