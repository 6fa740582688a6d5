package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

func TestProfileStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	profile := domainauth.UserProfile{
		Name:       "Jamie Rivera",
		Email:      "jamie@example.com",
		PictureURL: "https://cdn.example.com/jamie.png",
		Role:       domainauth.RoleContentManager,
		Bio:        "Publishes weekly product updates.",
	}

	require.NoError(t, store.Save(ctx, "user-123", profile))

	retrieved, err := store.Get(ctx, "user-123")
	require.NoError(t, err)
	assert.Equal(t, profile, retrieved)

	// Profiles live under the user-storage: namespace.
	exists := client.Exists(ctx, "user-storage:user-123").Val()
	assert.Equal(t, int64(1), exists)
}

func TestProfileStore_EmailImmutable(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	original := domainauth.UserProfile{
		Name:  "Jamie Rivera",
		Email: "jamie@example.com",
		Role:  domainauth.RoleAdmin,
	}
	require.NoError(t, store.Save(ctx, "user-123", original))

	// An update attempting to change the email keeps the original address.
	update := domainauth.UserProfile{
		Name:  "Jamie R.",
		Email: "other@example.com",
		Role:  domainauth.RoleAdmin,
		Bio:   "Updated bio",
	}
	require.NoError(t, store.Save(ctx, "user-123", update))

	retrieved, err := store.Get(ctx, "user-123")
	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", retrieved.Email)
	assert.Equal(t, "Jamie R.", retrieved.Name)
	assert.Equal(t, "Updated bio", retrieved.Bio)
}

func TestProfileStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	_, err := store.Get(ctx, "nobody")
	assert.Equal(t, ErrNotFound, err)
}

func TestProfileStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-del", domainauth.UserProfile{
		Name:  "To Delete",
		Email: "del@example.com",
		Role:  domainauth.RoleAdmin,
	}))

	require.NoError(t, store.Delete(ctx, "user-del"))

	_, err := store.Get(ctx, "user-del")
	assert.Equal(t, ErrNotFound, err)
}

func TestProfileStore_SaveEmptyUserID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewProfileStore(client)
	err := store.Save(context.Background(), "", domainauth.UserProfile{Name: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user ID cannot be empty")
}
