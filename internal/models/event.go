package models

import "time"

// Tile event types.
const (
	TileCreated = "tile.created"
	TileUpdated = "tile.updated"
	TileDeleted = "tile.deleted"
)

// TileEvent describes a committed change to a tile.
type TileEvent struct {
	Type string    `json:"type"`
	Tile Tile      `json:"tile"`
	At   time.Time `json:"at"`
}
