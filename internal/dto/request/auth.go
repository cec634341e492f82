package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	City     *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Role     string  `json:"role" validate:"required,oneof=client provider"`

	// Provider-only fields, ignored for clients.
	Specialty  *string `json:"specialty,omitempty" validate:"omitempty,min=3,max=100"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
