// cmd/migrate/main.go
// Imports a legacy JSON snapshot (users.json, apps.json) into the database.
// Records already present by username or tile title are skipped, so the
// command can be re-run safely.
//
// Usage:
//
//	DB_DRIVER=postgres DATABASE_DSN="host=... dbname=portal" \
//	go run ./cmd/migrate -dir ./data
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"portal/internal/config"
	"portal/internal/database"
	"portal/internal/logger"
	"portal/internal/repositories"
	"portal/internal/services"
	"portal/internal/snapshot"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dir := flag.String("dir", cfg.SnapshotDir, "directory holding users.json and apps.json")
	flag.Parse()

	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	if err := run(context.Background(), cfg, *dir, zlog); err != nil {
		zlog.Error("migration aborted", zap.Error(err))
		zlog.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir string, zlog *zap.Logger) error {
	db, err := database.Open(cfg, zlog)
	if err != nil {
		return err
	}
	defer database.Close(db)

	snap, err := snapshot.Load(dir)
	if err != nil {
		// Whatever could be read is still imported.
		zlog.Warn("snapshot partially unreadable", zap.String("dir", dir), zap.Error(err))
	}
	zlog.Info("snapshot loaded",
		zap.String("dir", dir),
		zap.Bool("users_found", snap.UsersFound),
		zap.Int("users", len(snap.Users)),
		zap.Bool("apps_found", snap.TilesFound),
		zap.Int("apps", len(snap.Tiles)),
	)

	migrator := services.NewMigrator(
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMTileRepository(db),
		cfg.BootstrapAdminPassword,
		zlog,
	)
	outcome, err := migrator.Run(ctx, snap)
	if err != nil {
		return err
	}

	for _, f := range outcome.Failures {
		zlog.Warn("record skipped",
			zap.String("collection", f.Collection),
			zap.Int("index", f.Index),
			zap.Error(f.Err),
		)
	}
	zlog.Info("migration complete",
		zap.Int("users_added", outcome.UsersAdded),
		zap.Int("apps_added", outcome.AppsAdded),
		zap.Int("skipped_invalid", len(outcome.Failures)),
	)
	return nil
}
