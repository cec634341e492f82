package response

import "github.com/shopspring/decimal"

type PlatformStatsResponse struct {
	TotalUsers     int64           `json:"total_users"`
	TotalProviders int64           `json:"total_providers"`
	TotalServices  int64           `json:"total_services"`
	BookingsToday  int64           `json:"bookings_today"`
	OpenTickets    int64           `json:"open_tickets"`
	UrgentTickets  int64           `json:"urgent_tickets"`
	MonthRevenue   decimal.Decimal `json:"month_revenue"`
	MonthFees      decimal.Decimal `json:"month_fees"`
}

type BookingsPerDayResponse struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type WeeklyBookingsResponse struct {
	Days []BookingsPerDayResponse `json:"days"`
}
