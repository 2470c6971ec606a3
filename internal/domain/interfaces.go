package domain

import (
	"context"
	"time"

	"bookery/internal/database"
	"bookery/internal/models"
)

// Repository is the persistence surface the services operate on.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateService(ctx context.Context, svc *models.Service) error
	GetService(ctx context.Context, id int64) (*models.Service, error)
	ListServices(ctx context.Context, skip, limit int) ([]*models.Service, error)
	ListServicesByCategory(ctx context.Context, category string, skip, limit int) ([]*models.Service, error)
	ListAvailableServices(ctx context.Context, skip, limit int) ([]*models.Service, error)
	SearchServices(ctx context.Context, term string, skip, limit int) ([]*models.Service, error)
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id int64) error

	CreateBooking(ctx context.Context, booking *models.Booking) error
	CreateBookingGuarded(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context, filter database.BookingFilter) ([]*models.Booking, error)
	ListBookingsByDateRange(ctx context.Context, start, end time.Time, skip, limit int) ([]*models.Booking, error)
	UserBookingHistory(ctx context.Context, userID int64, skip, limit int) ([]*models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	DeleteBooking(ctx context.Context, id int64) error
	CountConflicts(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (int, error)
	CheckAvailability(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (bool, error)

	BookingStats(ctx context.Context, now time.Time) (*models.BookingStats, error)
	ServiceStats(ctx context.Context) (*models.ServiceStats, error)
	UserStats(ctx context.Context) (*models.UserStats, error)
}

// StatsCache holds serialized aggregate snapshots with a TTL.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context, filter database.BookingFilter) ([]*models.Booking, error)
	ListBookingsByDateRange(ctx context.Context, start, end time.Time, skip, limit int) ([]*models.Booking, error)
	UserBookingHistory(ctx context.Context, userID int64, skip, limit int) ([]*models.Booking, error)
	PatchBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	CheckAvailability(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (bool, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type CatalogService interface {
	CreateService(ctx context.Context, svc *models.Service) error
	GetService(ctx context.Context, id int64) (*models.Service, error)
	ListServices(ctx context.Context, skip, limit int) ([]*models.Service, error)
	ListServicesByCategory(ctx context.Context, category string, skip, limit int) ([]*models.Service, error)
	ListAvailableServices(ctx context.Context, skip, limit int) ([]*models.Service, error)
	SearchServices(ctx context.Context, term string, skip, limit int) ([]*models.Service, error)
	PatchService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

type StatsService interface {
	BookingStats(ctx context.Context) (*models.BookingStats, error)
	ServiceStats(ctx context.Context) (*models.ServiceStats, error)
	UserStats(ctx context.Context) (*models.UserStats, error)
}
