package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/core/domain"
)

func TestSeed_PopulatesFixture(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Admin1", users[0].Username)
	assert.True(t, users[0].IsAdmin)
	assert.False(t, users[1].IsAdmin)

	admin, err := store.GetUserByEmail(ctx, "admin@admin.com")
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	gardens, err := store.ListGardens(ctx)
	require.NoError(t, err)
	require.Len(t, gardens, 2)

	plants, err := store.ListPlants(ctx)
	require.NoError(t, err)
	assert.Len(t, plants, 9)

	var garden1, garden2 domain.Garden
	for _, g := range gardens {
		switch g.Name {
		case "Garden1":
			garden1 = g
		case "Garden2":
			garden2 = g
		}
	}
	require.NotZero(t, garden1.ID)
	require.NotZero(t, garden2.ID)

	user1, err := store.GetUserByEmail(ctx, "user1@email.com")
	require.NoError(t, err)
	assert.Equal(t, user1.ID, garden1.UserID)

	placements1, err := store.ListGardenPlants(ctx, garden1.ID)
	require.NoError(t, err)
	assert.Len(t, placements1, 2)

	placements2, err := store.ListGardenPlants(ctx, garden2.ID)
	require.NoError(t, err)
	assert.Len(t, placements2, 3)

	comments1, err := store.ListComments(ctx, garden1.ID)
	require.NoError(t, err)
	assert.Len(t, comments1, 3)

	comments2, err := store.ListComments(ctx, garden2.ID)
	require.NoError(t, err)
	assert.Len(t, comments2, 1)
}

func TestSeed_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store))
	require.NoError(t, Seed(ctx, store))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
