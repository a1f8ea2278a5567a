package repositories

import (
	"context"
	"errors"
	"fmt"

	"portal/internal/models"

	"gorm.io/gorm"
)

// GORMTileRepository is a GORM implementation of TileRepository.
type GORMTileRepository struct {
	db *gorm.DB
}

// NewGORMTileRepository creates a new instance of GORMTileRepository.
func NewGORMTileRepository(db *gorm.DB) *GORMTileRepository {
	return &GORMTileRepository{
		db: db,
	}
}

// GetAll retrieves all live tiles from the database.
func (r *GORMTileRepository) GetAll(ctx context.Context) ([]models.Tile, error) {
	var tiles []models.Tile
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tiles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tiles: %w", err)
	}
	return tiles, nil
}

// GetByID retrieves a single live tile by its ID from the database.
func (r *GORMTileRepository) GetByID(ctx context.Context, id uint) (*models.Tile, error) {
	var tile models.Tile
	if err := r.db.WithContext(ctx).First(&tile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tile with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tile by ID %d: %w", id, err)
	}
	return &tile, nil
}

// SeedIfEmpty inserts seeds when no tile row, live or retired, exists.
func (r *GORMTileRepository) SeedIfEmpty(ctx context.Context, seeds []models.Tile) (bool, error) {
	seeded := false
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&models.Tile{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 || len(seeds) == 0 {
			return nil
		}
		if err := tx.Create(&seeds).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed tiles: %w", err)
	}
	return seeded, nil
}

// Create assigns max(id)+1 to tile and inserts it.
func (r *GORMTileRepository) Create(ctx context.Context, tile *models.Tile) error {
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return insertNext(tx, tile)
	})
	if err != nil {
		return fmt.Errorf("failed to create tile: %w", err)
	}
	return nil
}

// CreateIfTitleAbsent inserts tile unless a live tile with the same title exists.
func (r *GORMTileRepository) CreateIfTitleAbsent(ctx context.Context, tile *models.Tile) (bool, error) {
	created := false
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Tile{}).Where("title = ?", tile.Title).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := insertNext(tx, tile); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert tile %q: %w", tile.Title, err)
	}
	return created, nil
}

// Update applies patch to the live tile with the given id.
func (r *GORMTileRepository) Update(ctx context.Context, id uint, patch models.TilePatch) (*models.Tile, error) {
	var tile models.Tile
	err := atomically(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&tile, id).Error; err != nil {
			return err
		}
		patch.Apply(&tile)
		return tx.Save(&tile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tile with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update tile %d: %w", id, err)
	}
	return &tile, nil
}

// Delete retires the tile with the given id. The row stays behind as a
// soft-deleted record so the id keeps counting towards the high-water mark.
func (r *GORMTileRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Tile{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tile %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tile with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// insertNext must run inside a transaction.
func insertNext(tx *gorm.DB, tile *models.Tile) error {
	var maxID uint
	if err := tx.Unscoped().Model(&models.Tile{}).Select("COALESCE(MAX(id), 0)").Row().Scan(&maxID); err != nil {
		return err
	}
	tile.ID = maxID + 1
	return tx.Create(tile).Error
}
