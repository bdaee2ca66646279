package service

import (
	"admin-service/internal/models"
	"admin-service/internal/repository"
	"admin-service/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(items []models.MenuItem) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Path
	}
	return out
}

func TestMenuService_SeedIsIdempotent(t *testing.T) {
	svc := NewMenuService(memory.NewStore().Menu())
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/users", "/products", "/orders", "/reports"}, paths(items))
}

func TestMenuService_SeedSkipsWhenOnlyDeletedItemsExist(t *testing.T) {
	svc := NewMenuService(memory.NewStore().Menu())
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateMenuItemInput{Title: "Custom", Path: "/custom", Icon: "i", Roles: []string{"admin"}})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, item.ID)
	require.NoError(t, err)

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestMenuService_ListByRole(t *testing.T) {
	svc := NewMenuService(memory.NewStore().Menu())
	ctx := context.Background()
	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	admin, err := svc.ListByRole(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, admin, 5)

	user, err := svc.ListByRole(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/products", "/orders"}, paths(user))

	none, err := svc.ListByRole(ctx, "guest")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ListByRole(ctx, " ")
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestMenuService_CRUD(t *testing.T) {
	svc := NewMenuService(memory.NewStore().Menu())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateMenuItemInput{Title: "No path", Icon: "i", Roles: []string{"admin"}})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	item, err := svc.Create(ctx, CreateMenuItemInput{Title: "Settings", Path: "/settings", Icon: "SettingOutlined", Roles: []string{"admin"}})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, item.Status)

	_, err = svc.Create(ctx, CreateMenuItemInput{Title: "Again", Path: "/settings", Icon: "i", Roles: []string{"user"}})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	updated, err := svc.Update(ctx, item.ID, UpdateMenuItemInput{Title: strPtr("Preferences"), Roles: []string{"admin", "user"}})
	require.NoError(t, err)
	assert.Equal(t, "Preferences", updated.Title)
	assert.Equal(t, "/settings", updated.Path)

	byUser, err := svc.ListByRole(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"/settings"}, paths(byUser))

	deleted, err := svc.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, deleted.Status)

	_, err = svc.Get(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	byUser, err = svc.ListByRole(ctx, "user")
	require.NoError(t, err)
	assert.Empty(t, byUser)
}
