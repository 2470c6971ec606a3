package models

// MonthCount is one bucket of the trailing monthly trend.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type RevenueStats struct {
	Total             float64 `json:"total"`
	AveragePerBooking float64 `json:"average_per_booking"`
}

type BookingStats struct {
	TotalBookings      int64            `json:"total_bookings"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
	MonthlyTrends      []MonthCount     `json:"monthly_trends"`
	Revenue            RevenueStats     `json:"revenue"`
}

type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

type ServiceStats struct {
	TotalServices        int64            `json:"total_services"`
	AvailableServices    int64            `json:"available_services"`
	UnavailableServices  int64            `json:"unavailable_services"`
	CategoryDistribution map[string]int64 `json:"category_distribution"`
	PriceRange           PriceRange       `json:"price_range"`
}

type UserStats struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	InactiveUsers     int64 `json:"inactive_users"`
	UsersWithBookings int64 `json:"users_with_bookings"`
}
