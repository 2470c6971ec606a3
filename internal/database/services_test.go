package database

import (
	"context"
	"testing"

	"bookery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createService(t *testing.T, db *DB, name, category string, price float64, available bool) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:            name,
		Description:     name + " description",
		Price:           price,
		DurationMinutes: 60,
		Category:        category,
		IsAvailable:     available,
	}
	require.NoError(t, db.CreateService(context.Background(), svc))
	return svc
}

func TestCreateAndGetService(t *testing.T) {
	db := setupTestDB(t)

	svc := createService(t, db, "Haircut", "beauty", 40, true)
	assert.Positive(t, svc.ID)

	got, err := db.GetService(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haircut", got.Name)
	assert.Equal(t, 40.0, got.Price)
	assert.True(t, got.IsAvailable)
}

func TestGetService_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetService(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListServicesByCategory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createService(t, db, "Haircut", "beauty", 40, true)
	createService(t, db, "Manicure", "beauty", 30, true)
	createService(t, db, "Massage", "wellness", 80, true)

	beauty, err := db.ListServicesByCategory(ctx, "beauty", 0, 100)
	require.NoError(t, err)
	assert.Len(t, beauty, 2)

	wellness, err := db.ListServicesByCategory(ctx, "wellness", 0, 100)
	require.NoError(t, err)
	assert.Len(t, wellness, 1)
}

func TestListAvailableServices(t *testing.T) {
	db := setupTestDB(t)

	createService(t, db, "Open", "misc", 10, true)
	createService(t, db, "Closed", "misc", 10, false)

	available, err := db.ListAvailableServices(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Open", available[0].Name)
}

func TestSearchServices(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createService(t, db, "Deep Tissue Massage", "wellness", 85, true)
	createService(t, db, "Haircut", "beauty", 40, true)
	createService(t, db, "Hidden Massage", "wellness", 85, false)

	found, err := db.SearchServices(ctx, "massage", 0, 100)
	require.NoError(t, err)
	// unavailable services are excluded from search
	require.Len(t, found, 1)
	assert.Equal(t, "Deep Tissue Massage", found[0].Name)

	none, err := db.SearchServices(ctx, "nothing-like-this", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateService(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := createService(t, db, "Old", "misc", 10, true)
	svc.Name = "New"
	svc.Price = 25
	svc.IsAvailable = false
	require.NoError(t, db.UpdateService(ctx, svc))

	got, err := db.GetService(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 25.0, got.Price)
	assert.False(t, got.IsAvailable)
}

func TestUpdateService_NotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.UpdateService(context.Background(), &models.Service{ID: 404, Name: "ghost"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestDeleteService(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	svc := createService(t, db, "Temp", "misc", 10, true)
	require.NoError(t, db.DeleteService(ctx, svc.ID))

	_, err := db.GetService(ctx, svc.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	assert.ErrorIs(t, db.DeleteService(ctx, svc.ID), ErrServiceNotFound)
}
