package repositories_test

import (
	"context"
	"testing"

	"portal/internal/models"
	"portal/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tileIDs(tiles []models.Tile) []uint {
	ids := make([]uint, 0, len(tiles))
	for _, t := range tiles {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestGORMTileRepository_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTileRepository(newTestDB(t))

	seeded, err := repo.SeedIfEmpty(ctx, models.DefaultTiles())
	require.NoError(t, err)
	assert.True(t, seeded)

	tiles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, tileIDs(tiles))
	assert.Equal(t, "Dashboard", tiles[0].Title)
	assert.Equal(t, "Help Center", tiles[4].Title)

	// Second call on a populated store is a no-op.
	seeded, err = repo.SeedIfEmpty(ctx, models.DefaultTiles())
	require.NoError(t, err)
	assert.False(t, seeded)

	// Deleting every seed must not make the store look empty again.
	for id := uint(1); id <= 5; id++ {
		require.NoError(t, repo.Delete(ctx, id))
	}
	seeded, err = repo.SeedIfEmpty(ctx, models.DefaultTiles())
	require.NoError(t, err)
	assert.False(t, seeded)

	tiles, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tiles)
}

func TestGORMTileRepository_CreateAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTileRepository(newTestDB(t))

	first := &models.Tile{Title: "A"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, uint(1), first.ID)

	second := &models.Tile{Title: "B"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, uint(2), second.ID)

	// Retiring the current maximum must not free its id.
	require.NoError(t, repo.Delete(ctx, second.ID))
	third := &models.Tile{Title: "C"}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, uint(3), third.ID)
}

func TestGORMTileRepository_CreateIfTitleAbsent(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTileRepository(newTestDB(t))

	created, err := repo.CreateIfTitleAbsent(ctx, &models.Tile{Title: "Dashboard", IconURL: "a.png"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfTitleAbsent(ctx, &models.Tile{Title: "Dashboard", IconURL: "b.png"})
	require.NoError(t, err)
	assert.False(t, created)

	// Titles are compared case-sensitively.
	created, err = repo.CreateIfTitleAbsent(ctx, &models.Tile{Title: "dashboard"})
	require.NoError(t, err)
	assert.True(t, created)

	tiles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	assert.Equal(t, "a.png", tiles[0].IconURL)
}

func TestGORMTileRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTileRepository(newTestDB(t))

	tile := &models.Tile{Title: "Reports", IconURL: "i", LinkURL: "/r", Description: "d"}
	require.NoError(t, repo.Create(ctx, tile))

	updated, err := repo.Update(ctx, tile.ID, models.TilePatch{Title: strPtr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Title)
	assert.Equal(t, "i", updated.IconURL)
	assert.Equal(t, "/r", updated.LinkURL)
	assert.Equal(t, "d", updated.Description)

	stored, err := repo.GetByID(ctx, tile.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", stored.Title)

	_, err = repo.Update(ctx, 99, models.TilePatch{Title: strPtr("Y")})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMTileRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMTileRepository(newTestDB(t))

	tile := &models.Tile{Title: "Settings"}
	require.NoError(t, repo.Create(ctx, tile))

	require.NoError(t, repo.Delete(ctx, tile.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tile.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), repositories.ErrNotFound)

	_, err := repo.GetByID(ctx, tile.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.Update(ctx, tile.ID, models.TilePatch{Title: strPtr("back")})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
