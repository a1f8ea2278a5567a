package models

import (
	"time"

	"gorm.io/gorm"
)

// Tile is an entry displayed on the portal.
//
// IDs are assigned by the repository, never by the database, so they stay
// stable across drivers. Deleted tiles are kept as retired rows (DeletedAt set)
// so their ids are never handed out again.
type Tile struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title       string         `json:"title" gorm:"index;not null;type:varchar(255)"`
	IconURL     string         `json:"icon_url" gorm:"type:text"`
	LinkURL     string         `json:"link_url" gorm:"type:text"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TileInput is the body accepted when creating a tile.
type TileInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	IconURL     string `json:"icon_url" validate:"required"`
	LinkURL     string `json:"link_url" validate:"required"`
	Description string `json:"description"`
}

// TilePatch is a partial update; only non-nil fields are applied.
type TilePatch struct {
	Title       *string `json:"title" validate:"omitnil,max=255"`
	IconURL     *string `json:"icon_url"`
	LinkURL     *string `json:"link_url"`
	Description *string `json:"description"`
}

// Apply copies the non-nil fields of p onto t.
func (p TilePatch) Apply(t *Tile) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.IconURL != nil {
		t.IconURL = *p.IconURL
	}
	if p.LinkURL != nil {
		t.LinkURL = *p.LinkURL
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
}

// DefaultTiles returns the tiles seeded into an empty store, in id order.
func DefaultTiles() []Tile {
	return []Tile{
		{
			ID:          1,
			Title:       "Dashboard",
			IconURL:     "https://ui-avatars.com/api/?name=DB&background=0D8ABC&color=fff&size=128",
			LinkURL:     "/dashboard",
			Description: "Main system dashboard",
		},
		{
			ID:          2,
			Title:       "User Management",
			IconURL:     "https://ui-avatars.com/api/?name=UM&background=ff5252&color=fff&size=128",
			LinkURL:     "/users",
			Description: "Manage system users",
		},
		{
			ID:          3,
			Title:       "Reports",
			IconURL:     "https://ui-avatars.com/api/?name=RP&background=4caf50&color=fff&size=128",
			LinkURL:     "/reports",
			Description: "View analytics and reports",
		},
		{
			ID:          4,
			Title:       "Settings",
			IconURL:     "https://ui-avatars.com/api/?name=ST&background=607d8b&color=fff&size=128",
			LinkURL:     "/admin",
			Description: "System configuration",
		},
		{
			ID:          5,
			Title:       "Help Center",
			IconURL:     "https://ui-avatars.com/api/?name=HC&background=ff9800&color=fff&size=128",
			LinkURL:     "/help",
			Description: "Documentation and support",
		},
	}
}
