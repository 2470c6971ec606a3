package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus статус вне множества pending/confirmed/cancelled/completed
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTimeRange start_time должен быть строго раньше end_time
	ErrInvalidTimeRange = errors.New("start_time must be before end_time")

	// ErrSlotTaken returned by the guarded insert when the interval conflicts
	// with a pending or confirmed booking for the same service.
	ErrSlotTaken = errors.New("time slot is not available")

	ErrDuplicate = errors.New("record already exists")
)

// isConstraintErr reports whether err is a sqlite uniqueness or FK violation.
func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
