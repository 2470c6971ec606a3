package service

import (
	"context"
	"testing"
	"time"

	"bookery/internal/models"
	"bookery/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_ServesFromCache(t *testing.T) {
	db := newTestDB(t)
	seedUserService(t, db)
	ctx := context.Background()

	logger := zerolog.Nop()
	stats := NewStatsService(db, repository.NewMemoryStatsCache(time.Minute), &logger)

	first, err := stats.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalUsers)

	// new rows are invisible until the snapshot expires
	require.NoError(t, db.CreateUser(ctx, &models.User{Email: "x@example.com", Username: "x", IsActive: true}))

	second, err := stats.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.TotalUsers)
}

func TestStatsService_NilCacheGoesStraightToRepo(t *testing.T) {
	db := newTestDB(t)
	seedUserService(t, db)
	ctx := context.Background()

	logger := zerolog.Nop()
	stats := NewStatsService(db, nil, &logger)

	users, err := stats.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), users.TotalUsers)

	services, err := stats.ServiceStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), services.TotalServices)

	bookings, err := stats.BookingStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, bookings.TotalBookings)
	assert.Len(t, bookings.MonthlyTrends, models.HistoryWindowMonths)
}

func TestStatsService_ExpiredCacheRefreshes(t *testing.T) {
	db := newTestDB(t)
	seedUserService(t, db)
	ctx := context.Background()

	logger := zerolog.Nop()
	stats := NewStatsService(db, repository.NewMemoryStatsCache(time.Nanosecond), &logger)

	first, err := stats.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalUsers)

	require.NoError(t, db.CreateUser(ctx, &models.User{Email: "x@example.com", Username: "x", IsActive: true}))
	time.Sleep(time.Millisecond)

	second, err := stats.UserStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.TotalUsers)
}
