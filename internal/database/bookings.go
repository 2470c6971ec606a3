package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookery/internal/models"
)

const bookingColumns = `id, user_id, service_id, booking_date, start_time, end_time, status, notes, total_price, created_at, updated_at`

// BookingFilter narrows ListBookings; zero values mean "no filter".
type BookingFilter struct {
	UserID    int64
	ServiceID int64
	Status    string
	Skip      int
	Limit     int
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (user_id, service_id, booking_date, start_time, end_time, status, notes, total_price, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.UserID,
		booking.ServiceID,
		booking.BookingDate.Format(dateLayout),
		booking.StartTime.Unix(),
		booking.EndTime.Unix(),
		booking.Status,
		booking.Notes,
		booking.TotalPrice,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

// CountConflicts returns the number of pending or confirmed bookings for
// the service whose [start_time, end_time) interval overlaps [start, end).
// Touching endpoints do not conflict. excludeID (0 = none) skips one
// booking, used when re-checking a booking being moved.
func (db *DB) CountConflicts(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE service_id = ?
              AND status IN (?, ?)
              AND start_time < ? AND end_time > ?`
	args := []interface{}{serviceID, models.StatusPending, models.StatusConfirmed, end.Unix(), start.Unix()}
	if excludeID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count conflicts: %w", err)
	}
	return count, nil
}

// CheckAvailability reports whether the interval is free of conflicting
// bookings for the service. Read-only; the caller is responsible for
// making any check-then-insert sequence atomic (see CreateBookingGuarded).
func (db *DB) CheckAvailability(ctx context.Context, serviceID int64, start, end time.Time, excludeID int64) (bool, error) {
	count, err := db.CountConflicts(ctx, serviceID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateBookingGuarded re-runs the conflict count and inserts inside a
// single transaction, failing with ErrSlotTaken on conflict. This closes
// the check-then-act race the plain create leaves open.
func (db *DB) CreateBookingGuarded(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	queryCount := `SELECT COUNT(*) FROM bookings
                   WHERE service_id = ? AND status IN (?, ?)
                   AND start_time < ? AND end_time > ?`
	err = tx.QueryRowContext(ctx, queryCount, booking.ServiceID,
		models.StatusPending, models.StatusConfirmed,
		booking.EndTime.Unix(), booking.StartTime.Unix()).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}

	queryInsert := `INSERT INTO bookings (user_id, service_id, booking_date, start_time, end_time, status, notes, total_price, created_at, updated_at)
                    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := tx.ExecContext(ctx, queryInsert,
		booking.UserID,
		booking.ServiceID,
		booking.BookingDate.Format(dateLayout),
		booking.StartTime.Unix(),
		booking.EndTime.Unix(),
		booking.Status,
		booking.Notes,
		booking.TotalPrice,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return tx.Commit()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	row := db.QueryRowContext(ctx, query, id)
	booking, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error) {
	var conds []string
	var args []interface{}
	if filter.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.ServiceID != 0 {
		conds = append(conds, "service_id = ?")
		args = append(args, filter.ServiceID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id LIMIT ? OFFSET ?`

	skip, limit := clampLimit(filter.Skip, filter.Limit)
	args = append(args, limit, skip)

	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListBookingsByDateRange(ctx context.Context, start, end time.Time, skip, limit int) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booking_date >= ? AND booking_date <= ?
              ORDER BY booking_date, id LIMIT ? OFFSET ?`
	skip, limit = clampLimit(skip, limit)
	return db.queryBookings(ctx, query, start.Format(dateLayout), end.Format(dateLayout), limit, skip)
}

// UserBookingHistory returns the user's completed and cancelled bookings,
// newest booking date first.
func (db *DB) UserBookingHistory(ctx context.Context, userID int64, skip, limit int) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE user_id = ? AND status IN (?, ?)
              ORDER BY booking_date DESC, id DESC LIMIT ? OFFSET ?`
	skip, limit = clampLimit(skip, limit)
	return db.queryBookings(ctx, query, userID, models.StatusCompleted, models.StatusCancelled, limit, skip)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	var dateStr string
	var startUnix, endUnix int64
	var notes sql.NullString
	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceID, &dateStr, &startUnix, &endUnix,
		&b.Status, &notes, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.BookingDate, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking date %s: %w", dateStr, err)
	}
	b.StartTime = time.Unix(startUnix, 0).UTC()
	b.EndTime = time.Unix(endUnix, 0).UTC()
	b.Notes = notes.String
	return b, nil
}

// UpdateBooking replaces the mutable fields; callers merge patches onto a
// fetched record first. Status is not touched here.
func (db *DB) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	query := `UPDATE bookings SET booking_date = ?, start_time = ?, end_time = ?, notes = ?, total_price = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.BookingDate.Format(dateLayout),
		booking.StartTime.Unix(),
		booking.EndTime.Unix(),
		booking.Notes,
		booking.TotalPrice,
		now,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	booking.UpdatedAt = now
	return nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (db *DB) DeleteBooking(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
