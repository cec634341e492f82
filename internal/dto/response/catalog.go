package response

import (
	"time"

	"service-marketplace/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

type ProviderResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name,omitempty"`
	Specialty       string          `json:"specialty"`
	Description     *string         `json:"description,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Available       bool            `json:"available"`
	OnlineCapable   bool            `json:"online_capable"`
	Verified        bool            `json:"verified"`
	AverageScore    float64         `json:"average_score"`
	TotalRatings    int             `json:"total_ratings"`
}

type ProviderDetailResponse struct {
	ProviderResponse
	Services []ServiceResponse `json:"services"`
}

type ServiceResponse struct {
	ID              string          `json:"id"`
	ProviderID      string          `json:"provider_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Level           string          `json:"level"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Helper converters
func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
	}
}

func ProviderToResponse(provider *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:              provider.ID.String(),
		UserID:          provider.UserID.String(),
		Specialty:       provider.Specialty,
		Description:     provider.Description,
		ExperienceYears: provider.ExperienceYears,
		HourlyRate:      provider.HourlyRate,
		Available:       provider.Available,
		OnlineCapable:   provider.OnlineCapable,
		Verified:        provider.Verified,
	}
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              service.ID.String(),
		ProviderID:      service.ProviderID.String(),
		Title:           service.Title,
		Description:     service.Description,
		Level:           service.Level,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Active:          service.Active,
		CreatedAt:       service.CreatedAt,
	}
}
