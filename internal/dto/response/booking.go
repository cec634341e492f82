package response

import (
	"time"

	"service-marketplace/internal/data/entity"
)

type BookingResponse struct {
	ID             string                 `json:"id"`
	ClientID       string                 `json:"client_id"`
	ProviderID     string                 `json:"provider_id"`
	ServiceID      string                 `json:"service_id"`
	ServiceTitle   string                 `json:"service_title,omitempty"`
	ScheduledAt    time.Time              `json:"scheduled_at"`
	Status         entity.BookingStatus   `json:"status"`
	Modality       entity.BookingModality `json:"modality"`
	Notes          *string                `json:"notes,omitempty"`
	ServiceAddress *string                `json:"service_address,omitempty"`
	Payment        *PaymentResponse       `json:"payment,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

type AvailabilityResponse struct {
	Date      string   `json:"date"`
	Available []string `json:"available"`
	Occupied  []string `json:"occupied"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		ClientID:       booking.ClientID.String(),
		ProviderID:     booking.ProviderID.String(),
		ServiceID:      booking.ServiceID.String(),
		ScheduledAt:    booking.ScheduledAt,
		Status:         booking.Status,
		Modality:       booking.Modality,
		Notes:          booking.Notes,
		ServiceAddress: booking.ServiceAddress,
		CreatedAt:      booking.CreatedAt,
	}
}

func BookingWithPaymentToResponse(booking *entity.Booking, payment *entity.Payment) BookingResponse {
	resp := BookingToResponse(booking)
	if payment != nil {
		p := PaymentToResponse(payment)
		resp.Payment = &p
	}
	return resp
}
