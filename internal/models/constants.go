package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	// DefaultPageSize размер страницы по умолчанию для списков
	DefaultPageSize = 100

	// MaxPageSize максимальный размер страницы
	MaxPageSize = 1000

	// HistoryWindowMonths количество месяцев для статистики по месяцам
	HistoryWindowMonths = 12

	// DefaultStatsCacheTTL время жизни кэша статистики в секундах
	DefaultStatsCacheTTL = 30
)

// Stats cache keys, shared by the stats service and the invalidating
// event subscriber.
const (
	StatsCacheKeyBookings = "bookings"
	StatsCacheKeyServices = "services"
	StatsCacheKeyUsers    = "users"
)

// ValidStatus reports whether s is one of the recognized booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that block a time slot.
// Cancelled frees the slot; completed is historical and never blocks.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}
