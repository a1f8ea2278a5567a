package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"portal/internal/models"
	"portal/internal/repositories"
	"portal/internal/snapshot"

	"go.uber.org/zap"
)

// AdminUsername is the account guaranteed to exist after a migration run
// without a user snapshot.
const AdminUsername = "admin"

// Snapshot collection names used in MigrationRecordError.
const (
	CollectionUsers = "users"
	CollectionTiles = "apps"
)

// MigrationRecordError describes one snapshot record that could not be
// imported. It is collected, never returned from Run.
type MigrationRecordError struct {
	Collection string
	Index      int
	Err        error
}

func (e *MigrationRecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Collection, e.Index, e.Err)
}

func (e *MigrationRecordError) Unwrap() error { return e.Err }

// MigrationOutcome counts the rows a run actually inserted.
type MigrationOutcome struct {
	UsersAdded int                     `json:"users_added"`
	AppsAdded  int                     `json:"apps_added"`
	Failures   []*MigrationRecordError `json:"-"`
}

// Migrator reconciles snapshots into the user and tile stores. Records are
// matched by natural key (username, tile title); matches are skipped, so
// re-running over the same snapshot inserts nothing.
type Migrator struct {
	users         repositories.UserRepository
	tiles         repositories.TileRepository
	adminPassword string
	log           *zap.Logger
}

// NewMigrator creates a Migrator. adminPassword is given to the fallback
// admin account created by BootstrapAdmin.
func NewMigrator(users repositories.UserRepository, tiles repositories.TileRepository, adminPassword string, log *zap.Logger) *Migrator {
	return &Migrator{
		users:         users,
		tiles:         tiles,
		adminPassword: adminPassword,
		log:           log,
	}
}

// Run imports snap. Malformed records are tallied in the outcome; only
// storage failures abort the run, leaving already inserted rows in place.
func (m *Migrator) Run(ctx context.Context, snap *snapshot.Snapshot) (*MigrationOutcome, error) {
	out := &MigrationOutcome{}

	if snap.UsersFound {
		for i, raw := range snap.Users {
			added, err := m.importUser(ctx, raw)
			if err != nil {
				if rec := recordError(CollectionUsers, i, err); rec != nil {
					out.Failures = append(out.Failures, rec)
					m.log.Warn("skipping user record", zap.Error(rec))
					continue
				}
				return out, err
			}
			if added {
				out.UsersAdded++
			}
		}
		m.log.Info("users processed", zap.Int("added", out.UsersAdded), zap.Int("records", len(snap.Users)))
	} else {
		created, err := m.BootstrapAdmin(ctx)
		if err != nil {
			return out, err
		}
		if created {
			out.UsersAdded++
		}
	}

	if snap.TilesFound {
		for i, raw := range snap.Tiles {
			added, err := m.importTile(ctx, raw)
			if err != nil {
				if rec := recordError(CollectionTiles, i, err); rec != nil {
					out.Failures = append(out.Failures, rec)
					m.log.Warn("skipping app record", zap.Error(rec))
					continue
				}
				return out, err
			}
			if added {
				out.AppsAdded++
			}
		}
		m.log.Info("apps processed", zap.Int("added", out.AppsAdded), zap.Int("records", len(snap.Tiles)))
	} else {
		m.log.Info("no app snapshot found, skipping app migration")
	}

	return out, nil
}

// BootstrapAdmin creates the admin account with the configured fallback
// password unless a user named admin already exists.
func (m *Migrator) BootstrapAdmin(ctx context.Context) (bool, error) {
	hashed, err := HashPassword(m.adminPassword)
	if err != nil {
		return false, err
	}
	created, err := m.users.CreateIfAbsent(ctx, &models.User{Username: AdminUsername, PasswordHash: hashed})
	if err != nil {
		return false, err
	}
	if created {
		m.log.Info("created default admin user", zap.String("username", AdminUsername))
	}
	return created, nil
}

// BootstrapAdminIfNoUsers creates the admin account only on a store without
// any user. Renaming or replacing admin later does not bring it back.
func (m *Migrator) BootstrapAdminIfNoUsers(ctx context.Context) (bool, error) {
	hashed, err := HashPassword(m.adminPassword)
	if err != nil {
		return false, err
	}
	created, err := m.users.CreateIfNoUsers(ctx, &models.User{Username: AdminUsername, PasswordHash: hashed})
	if err != nil {
		return false, err
	}
	if created {
		m.log.Info("created default admin user on empty store", zap.String("username", AdminUsername))
	}
	return created, nil
}

func (m *Migrator) importUser(ctx context.Context, raw json.RawMessage) (bool, error) {
	var rec snapshot.UserRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return false, err
	}
	return m.users.CreateIfAbsent(ctx, &models.User{
		Username:     rec.Username,
		PasswordHash: rec.HashedPassword,
	})
}

func (m *Migrator) importTile(ctx context.Context, raw json.RawMessage) (bool, error) {
	var rec snapshot.TileRecord
	if err := decodeRecord(raw, &rec); err != nil {
		return false, err
	}
	return m.tiles.CreateIfTitleAbsent(ctx, &models.Tile{
		Title:       rec.Title,
		IconURL:     rec.IconURL,
		LinkURL:     rec.LinkURL,
		Description: rec.Description,
	})
}

// errMalformedRecord marks decode and validation failures.
type errMalformedRecord struct{ err error }

func (e errMalformedRecord) Error() string { return e.err.Error() }
func (e errMalformedRecord) Unwrap() error { return e.err }

func decodeRecord(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errMalformedRecord{fmt.Errorf("empty record")}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errMalformedRecord{err}
	}
	if err := validateStruct(dst); err != nil {
		return errMalformedRecord{err}
	}
	return nil
}

// recordError returns nil when err is not about the record itself.
func recordError(collection string, index int, err error) *MigrationRecordError {
	if _, ok := err.(errMalformedRecord); !ok {
		return nil
	}
	return &MigrationRecordError{Collection: collection, Index: index, Err: err}
}
