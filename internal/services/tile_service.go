package services

import (
	"context"
	"strings"
	"time"

	"portal/internal/models"
	"portal/internal/repositories"

	"go.uber.org/zap"
)

// EventPublisher receives tile changes after they are committed.
type EventPublisher interface {
	PublishTileEvent(event models.TileEvent) error
}

// TileService handles business logic related to portal tiles.
type TileService struct {
	repo      repositories.TileRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewTileService creates a new TileService. publisher may be nil.
func NewTileService(repo repositories.TileRepository, publisher EventPublisher, log *zap.Logger) *TileService {
	return &TileService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ListTiles returns all tiles, seeding the defaults into a store that has
// never held a tile.
func (s *TileService) ListTiles(ctx context.Context) ([]models.Tile, error) {
	seeded, err := s.repo.SeedIfEmpty(ctx, models.DefaultTiles())
	if err != nil {
		return nil, err
	}
	if seeded {
		s.log.Info("seeded default tiles")
	}
	return s.repo.GetAll(ctx)
}

// CreateTile validates in and stores it under the next free id.
func (s *TileService) CreateTile(ctx context.Context, in models.TileInput) (*models.Tile, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	tile := &models.Tile{
		Title:       in.Title,
		IconURL:     in.IconURL,
		LinkURL:     in.LinkURL,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, tile); err != nil {
		return nil, err
	}
	s.log.Info("tile created", zap.Uint("id", tile.ID), zap.String("title", tile.Title))
	s.publish(models.TileCreated, *tile)
	return tile, nil
}

// UpdateTile applies the non-nil fields of patch to the tile with the given id.
func (s *TileService) UpdateTile(ctx context.Context, id uint, patch models.TilePatch) (*models.Tile, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fieldError("title", "must not be empty")
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	tile, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("tile updated", zap.Uint("id", id))
	s.publish(models.TileUpdated, *tile)
	return tile, nil
}

// DeleteTile retires the tile with the given id.
func (s *TileService) DeleteTile(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("tile deleted", zap.Uint("id", id))
	s.publish(models.TileDeleted, models.Tile{ID: id})
	return nil
}

// publish never fails the caller: the write is already committed.
func (s *TileService) publish(eventType string, tile models.Tile) {
	if s.publisher == nil {
		return
	}
	event := models.TileEvent{Type: eventType, Tile: tile, At: time.Now().UTC()}
	if err := s.publisher.PublishTileEvent(event); err != nil {
		s.log.Warn("failed to publish tile event",
			zap.String("type", eventType), zap.Uint("id", tile.ID), zap.Error(err))
	}
}
