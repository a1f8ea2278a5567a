// Package snapshot reads the flat JSON exports consumed by the migrator.
//
// Both files are plain JSON arrays without an envelope:
//
//	users.json  [{"username": "...", "hashed_password": "..."}]
//	apps.json   [{"title": "...", "icon_url": "...", "link_url": "...", "description": "..."}]
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names looked up by Load.
const (
	UsersFile = "users.json"
	TilesFile = "apps.json"
)

// UserRecord is one entry of users.json.
type UserRecord struct {
	Username       string `json:"username" validate:"required,max=100"`
	HashedPassword string `json:"hashed_password" validate:"required,max=255"`
}

// TileRecord is one entry of apps.json.
type TileRecord struct {
	Title       string `json:"title" validate:"required,max=255"`
	IconURL     string `json:"icon_url" validate:"required"`
	LinkURL     string `json:"link_url" validate:"required"`
	Description string `json:"description"`
}

// Snapshot holds the raw records of both collections. Records are kept
// undecoded so one malformed entry cannot hide the others.
//
// UsersFound is false only when users.json does not exist; an existing file
// holding an empty array counts as found.
type Snapshot struct {
	Users      []json.RawMessage
	UsersFound bool
	Tiles      []json.RawMessage
	TilesFound bool
}

// Load reads users.json and apps.json from dir. A missing file is not an
// error. A file that is not a JSON array is reported in the returned error
// while the other collection is still loaded.
func Load(dir string) (*Snapshot, error) {
	snap := &Snapshot{}
	var errs []error

	users, found, err := readArray(filepath.Join(dir, UsersFile))
	snap.Users, snap.UsersFound = users, found
	if err != nil {
		errs = append(errs, err)
	}

	tiles, found, err := readArray(filepath.Join(dir, TilesFile))
	snap.Tiles, snap.TilesFound = tiles, found
	if err != nil {
		errs = append(errs, err)
	}

	return snap, errors.Join(errs...)
}

func readArray(path string) ([]json.RawMessage, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, true, nil
}

// Marshal encodes records as a snapshot collection. Used to produce fixtures
// and exports in the same format Load reads.
func Marshal[T UserRecord | TileRecord](records []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
