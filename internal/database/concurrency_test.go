package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bookery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Racing guarded creates for the same slot must admit exactly one
// booking.
func TestCreateBookingGuarded_Race(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	start, end := slot(10, 10, 11)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := &models.Booking{
				UserID: user.ID, ServiceID: svc.ID,
				BookingDate: start, StartTime: start, EndTime: end,
				Status: models.StatusPending,
			}
			results[i] = db.CreateBookingGuarded(ctx, b)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range results {
		if err == nil {
			created++
		} else {
			assert.True(t, errors.Is(err, ErrSlotTaken), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)

	bookings, err := db.ListBookings(ctx, BookingFilter{ServiceID: svc.ID})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	db := setupTestDB(t)
	user, svc := seedUserService(t, db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			start, end := slot(1+i, 10, 11)
			b := &models.Booking{
				UserID: user.ID, ServiceID: svc.ID,
				BookingDate: start, StartTime: start, EndTime: end,
				Status: models.StatusPending,
			}
			assert.NoError(t, db.CreateBooking(ctx, b))
		}(i)
		go func() {
			defer wg.Done()
			_, err := db.ListBookings(ctx, BookingFilter{ServiceID: svc.ID})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	bookings, err := db.ListBookings(ctx, BookingFilter{ServiceID: svc.ID})
	require.NoError(t, err)
	assert.Len(t, bookings, 4)
}
