package repositories_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"portal/internal/config"
	"portal/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

// newFileDB opens a file-backed database through database.Open so tests see
// the same connection settings as the server.
func newFileDB(t *testing.T, driver string) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:    driver,
		DatabaseDSN: filepath.Join(t.TempDir(), "portal.db"),
	}
	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

var sqliteDrivers = []string{config.DriverSQLite, config.DriverSQLitePureGo}
