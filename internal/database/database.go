// Package database opens the GORM handle shared by all repositories.
package database

import (
	"fmt"
	"strings"

	puresqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portal/internal/config"
	"portal/internal/models"
)

// Open connects to the store selected by cfg.DBDriver and creates the schema.
// The caller owns the returned handle and must Close it at shutdown.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DBDriver, err)
	}

	if isSQLite(cfg.DBDriver) {
		// SQLite has a single writer. One pooled connection makes concurrent
		// transactions queue in-process instead of failing with SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Tile{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite:
		return sqlite.Open(withParams(dsn, "_txlock=immediate", "_busy_timeout=5000")), nil
	case config.DriverSQLitePureGo:
		return puresqlite.Open(withParams(dsn, "_txlock=immediate", "_pragma=busy_timeout(5000)")), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isSQLite(driver string) bool {
	return driver == config.DriverSQLite || driver == config.DriverSQLitePureGo
}

// withParams appends query parameters to a SQLite DSN, keeping any the
// caller already set.
func withParams(dsn string, params ...string) string {
	for _, p := range params {
		key, _, _ := strings.Cut(p, "=")
		if key != "_pragma" && strings.Contains(dsn, key+"=") {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}
