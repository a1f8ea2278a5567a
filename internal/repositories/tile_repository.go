package repositories

import (
	"context"

	"portal/internal/models"
)

// TileRepository defines the interface for tile data access.
//
// Ids come from a high-water mark over every row the store has ever held,
// including deleted ones, so an id is never reused.
type TileRepository interface {
	// GetAll returns the live tiles ordered by id.
	GetAll(ctx context.Context) ([]models.Tile, error)
	GetByID(ctx context.Context, id uint) (*models.Tile, error)
	// SeedIfEmpty inserts seeds, keeping their ids, when the store has never
	// held a tile. It reports whether it inserted anything.
	SeedIfEmpty(ctx context.Context, seeds []models.Tile) (bool, error)
	// Create assigns the next id to tile and inserts it.
	Create(ctx context.Context, tile *models.Tile) error
	// CreateIfTitleAbsent behaves like Create unless a live tile already has
	// the same title, in which case nothing is written.
	CreateIfTitleAbsent(ctx context.Context, tile *models.Tile) (bool, error)
	Update(ctx context.Context, id uint, patch models.TilePatch) (*models.Tile, error)
	Delete(ctx context.Context, id uint) error
}
