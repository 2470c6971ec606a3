package service

import (
	"context"
	"testing"

	"bookery/internal/database"
	"bookery/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, db *database.DB) *UserService {
	t.Helper()
	logger := zerolog.Nop()
	return NewUserService(db, &logger)
}

func TestUserService_CreateForcesActive(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", Username: "a", IsActive: false}
	require.NoError(t, svc.CreateUser(ctx, user))

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive, "new users always start active")
}

func TestUserService_UpdatePreservesActiveFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", Username: "a"}
	require.NoError(t, svc.CreateUser(ctx, user))

	// deactivate behind the service's back
	stored, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, db.UpdateUser(ctx, stored))

	update := &models.User{ID: user.ID, Email: "new@example.com", Username: "a", IsActive: true}
	require.NoError(t, svc.UpdateUser(ctx, update))

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.False(t, got.IsActive, "the update payload cannot flip the active flag")
}

func TestUserService_UpdateUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	err := svc.UpdateUser(context.Background(), &models.User{ID: 404, Email: "x@example.com", Username: "x"})
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	user := &models.User{Email: "a@example.com", Username: "a"}
	require.NoError(t, svc.CreateUser(ctx, user))

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err := svc.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}
