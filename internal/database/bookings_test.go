package database

import (
	"context"
	"testing"
	"time"

	"bookery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(day int, hour, endHour int) (time.Time, time.Time) {
	start := time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, day, endHour, 0, 0, 0, time.UTC)
	return start, end
}

func TestCreateAndGetBooking(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)

	start, end := slot(10, 10, 11)
	b := mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusPending)
	assert.Positive(t, b.ID)

	got, err := db.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, svc.ID, got.ServiceID)
	assert.Equal(t, start.Unix(), got.StartTime.Unix())
	assert.Equal(t, end.Unix(), got.EndTime.Unix())
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestGetBooking_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBooking(context.Background(), 321)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCheckAvailability_OverlapBothDirections(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 12)
	mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusConfirmed)

	// new slot starts inside the existing one
	lateStart, lateEnd := slot(10, 11, 13)
	ok, err := db.CheckAvailability(ctx, svc.ID, lateStart, lateEnd, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// new slot ends inside the existing one
	earlyStart, earlyEnd := slot(10, 9, 11)
	ok, err = db.CheckAvailability(ctx, svc.ID, earlyStart, earlyEnd, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// new slot fully contains the existing one
	outerStart, outerEnd := slot(10, 9, 13)
	ok, err = db.CheckAvailability(ctx, svc.ID, outerStart, outerEnd, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// new slot fully inside the existing one
	innerStart, innerEnd := slot(10, 10, 11)
	ok, err = db.CheckAvailability(ctx, svc.ID, innerStart, innerEnd, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAvailability_TouchingEndpointsDoNotConflict(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 12)
	mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusConfirmed)

	before, beforeEnd := slot(10, 8, 10)
	ok, err := db.CheckAvailability(ctx, svc.ID, before, beforeEnd, 0)
	require.NoError(t, err)
	assert.True(t, ok, "slot ending exactly at the existing start must be free")

	afterStart, after := slot(10, 12, 14)
	ok, err = db.CheckAvailability(ctx, svc.ID, afterStart, after, 0)
	require.NoError(t, err)
	assert.True(t, ok, "slot starting exactly at the existing end must be free")
}

func TestCheckAvailability_InactiveStatusesNeverBlock(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 12)
	mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusCancelled)
	mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusCompleted)

	ok, err := db.CheckAvailability(ctx, svc.ID, start, end, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckAvailability_OtherServiceDoesNotConflict(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	other := createService(t, db, "Other", "misc", 10, true)

	start, end := slot(10, 10, 12)
	mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusConfirmed)

	ok, err := db.CheckAvailability(ctx, other.ID, start, end, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckAvailability_ExcludeSelf(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 12)
	b := mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusConfirmed)

	ok, err := db.CheckAvailability(ctx, svc.ID, start, end, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = db.CheckAvailability(ctx, svc.ID, start, end, b.ID)
	require.NoError(t, err)
	assert.True(t, ok, "a booking must not conflict with itself when rescheduling")
}

func TestCreateBookingGuarded(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 11)
	first := &models.Booking{
		UserID: user.ID, ServiceID: svc.ID,
		BookingDate: start, StartTime: start, EndTime: end,
		Status: models.StatusPending,
	}
	require.NoError(t, db.CreateBookingGuarded(ctx, first))
	assert.Positive(t, first.ID)

	second := &models.Booking{
		UserID: user.ID, ServiceID: svc.ID,
		BookingDate: start, StartTime: start, EndTime: end,
		Status: models.StatusPending,
	}
	err := db.CreateBookingGuarded(ctx, second)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// adjacent slot still goes through
	nextStart, nextEnd := slot(10, 11, 12)
	third := &models.Booking{
		UserID: user.ID, ServiceID: svc.ID,
		BookingDate: nextStart, StartTime: nextStart, EndTime: nextEnd,
		Status: models.StatusPending,
	}
	require.NoError(t, db.CreateBookingGuarded(ctx, third))
}

func TestListBookings_Filters(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	other := &models.User{Email: "other@example.com", Username: "other", IsActive: true}
	require.NoError(t, db.CreateUser(ctx, other))

	s1, e1 := slot(10, 9, 10)
	s2, e2 := slot(10, 10, 11)
	s3, e3 := slot(10, 11, 12)
	mustCreateBooking(t, db, user.ID, svc.ID, s1, e1, models.StatusPending)
	mustCreateBooking(t, db, user.ID, svc.ID, s2, e2, models.StatusConfirmed)
	mustCreateBooking(t, db, other.ID, svc.ID, s3, e3, models.StatusPending)

	byUser, err := db.ListBookings(ctx, BookingFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byStatus, err := db.ListBookings(ctx, BookingFilter{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	both, err := db.ListBookings(ctx, BookingFilter{UserID: user.ID, Status: models.StatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, both, 1)

	limited, err := db.ListBookings(ctx, BookingFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestUserBookingHistory_OnlyFinishedNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	oldStart, oldEnd := slot(1, 10, 11)
	midStart, midEnd := slot(15, 10, 11)
	newStart, newEnd := slot(25, 10, 11)
	mustCreateBooking(t, db, user.ID, svc.ID, oldStart, oldEnd, models.StatusCompleted)
	mustCreateBooking(t, db, user.ID, svc.ID, midStart, midEnd, models.StatusCancelled)
	mustCreateBooking(t, db, user.ID, svc.ID, newStart, newEnd, models.StatusPending)

	history, err := db.UserBookingHistory(ctx, user.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, history, 2, "pending bookings are not history")
	assert.Equal(t, models.StatusCancelled, history[0].Status)
	assert.Equal(t, models.StatusCompleted, history[1].Status)
}

func TestListBookingsByDateRange(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	inStart, inEnd := slot(10, 10, 11)
	outStart, outEnd := slot(25, 10, 11)
	mustCreateBooking(t, db, user.ID, svc.ID, inStart, inEnd, models.StatusPending)
	mustCreateBooking(t, db, user.ID, svc.ID, outStart, outEnd, models.StatusPending)

	from := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	got, err := db.ListBookingsByDateRange(ctx, from, to, 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inStart.Unix(), got[0].StartTime.Unix())
}

func TestUpdateBooking(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 11)
	b := mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusPending)

	b.Notes = "bring towels"
	b.TotalPrice = 99
	newStart, newEnd := slot(11, 14, 15)
	b.BookingDate = newStart
	b.StartTime = newStart
	b.EndTime = newEnd
	require.NoError(t, db.UpdateBooking(ctx, b))

	got, err := db.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "bring towels", got.Notes)
	assert.Equal(t, 99.0, got.TotalPrice)
	assert.Equal(t, newStart.Unix(), got.StartTime.Unix())
	// UpdateBooking never touches status
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 11)
	b := mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusPending)

	require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusConfirmed))
	got, err := db.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	// no transition graph: completed back to pending is allowed
	require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusCompleted))
	require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusPending))

	assert.ErrorIs(t, db.UpdateBookingStatus(ctx, 999, models.StatusConfirmed), ErrBookingNotFound)
}

func TestDeleteBooking(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 11)
	b := mustCreateBooking(t, db, user.ID, svc.ID, start, end, models.StatusPending)

	require.NoError(t, db.DeleteBooking(ctx, b.ID))
	_, err := db.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.ErrorIs(t, db.DeleteBooking(ctx, b.ID), ErrBookingNotFound)
}
