package request

type CreateServiceRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=150"`
	Description     string  `json:"description" validate:"required,min=10,max=2000"`
	Level           string  `json:"level" validate:"omitempty,oneof=basic standard premium"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=15,max=480"`
	Price           float64 `json:"price" validate:"required,gt=0"`
}

type UpdateServiceRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,min=10,max=2000"`
	Level           *string  `json:"level,omitempty" validate:"omitempty,oneof=basic standard premium"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=15,max=480"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Active          *bool    `json:"active,omitempty"`
}

type SearchProvidersRequest struct {
	PaginatedRequest
	CategorySlug string `json:"category" validate:"omitempty,max=50"`
	City         string `json:"city" validate:"omitempty,max=100"`
	Query        string `json:"q" validate:"omitempty,max=100"`
}
