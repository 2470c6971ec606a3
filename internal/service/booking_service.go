package service

import (
	"context"
	"time"

	"bookery/internal/database"
	"bookery/internal/domain"
	"bookery/internal/events"
	"bookery/internal/metrics"
	"bookery/internal/models"

	"github.com/rs/zerolog"
)

// BookingService enforces the booking lifecycle rules: referential checks
// at creation, forced pending status, partial updates, unrestricted status
// transitions within the valid set, and the availability query.
type BookingService struct {
	repo                domain.Repository
	eventBus            domain.EventPublisher
	enforceAvailability bool
	logger              *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, enforceAvailability bool, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:                repo,
		eventBus:            eventBus,
		enforceAvailability: enforceAvailability,
		logger:              logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking) error {
	// Проверяем, что пользователь и услуга существуют
	if _, err := s.repo.GetUser(ctx, booking.UserID); err != nil {
		return err
	}
	if _, err := s.repo.GetService(ctx, booking.ServiceID); err != nil {
		return err
	}

	if !booking.StartTime.Before(booking.EndTime) {
		return database.ErrInvalidTimeRange
	}

	// Статус при создании всегда pending, что бы ни прислал клиент
	booking.Status = models.StatusPending

	var err error
	if s.enforceAvailability {
		err = s.repo.CreateBookingGuarded(ctx, booking)
		if err == database.ErrSlotTaken {
			metrics.IncSlotConflict()
		}
	} else {
		err = s.repo.CreateBooking(ctx, booking)
	}
	if err != nil {
		return err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking)
	return nil
}

// PatchBooking merges only the supplied fields onto the stored booking.
// Overlap is not re-validated unless enforcement is on and the patch
// moves the interval, in which case the booking itself is excluded from
// the conflict check.
func (s *BookingService) PatchBooking(ctx context.Context, id int64, patch models.BookingPatch) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(booking)

	if !booking.StartTime.Before(booking.EndTime) {
		return nil, database.ErrInvalidTimeRange
	}

	if s.enforceAvailability && patch.TouchesTimes() {
		available, err := s.repo.CheckAvailability(ctx, booking.ServiceID, booking.StartTime, booking.EndTime, booking.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			metrics.IncSlotConflict()
			return nil, database.ErrSlotTaken
		}
	}

	if err := s.repo.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingUpdated, booking)
	return booking, nil
}

// UpdateBookingStatus overwrites the status unconditionally once it passes
// membership validation; no transition graph is enforced.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id int64, status string) (*models.Booking, error) {
	if !models.ValidStatus(status) {
		return nil, database.ErrInvalidStatus
	}

	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingStatusChanged, booking)
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingDeleted, booking)
	return nil
}

// CheckAvailability reports whether [start, end) is free for the service.
// excludeID (0 = none) lets a caller re-check a booking it is moving.
func (s *BookingService) CheckAvailability(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (bool, error) {
	return s.repo.CheckAvailability(ctx, serviceID, start, end, excludeID)
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, filter database.BookingFilter) ([]*models.Booking, error) {
	return s.repo.ListBookings(ctx, filter)
}

func (s *BookingService) ListBookingsByDateRange(ctx context.Context, start, end time.Time, skip, limit int) ([]*models.Booking, error) {
	return s.repo.ListBookingsByDateRange(ctx, start, end, skip, limit)
}

func (s *BookingService) UserBookingHistory(ctx context.Context, userID int64, skip, limit int) ([]*models.Booking, error) {
	return s.repo.UserBookingHistory(ctx, userID, skip, limit)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		ServiceID: booking.ServiceID,
		Status:    booking.Status,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Notes:     booking.Notes,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
