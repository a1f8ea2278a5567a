// Package config loads application settings from an optional .env file and
// environment variables. Environment variables always take precedence.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite       = "sqlite"
	DriverSQLitePureGo = "sqlite-purego"
	DriverPostgres     = "postgres"
)

// Config holds all application configuration.
type Config struct {
	AppPort string
	Debug   bool

	DBDriver    string
	DatabaseDSN string

	// JWT signing secret (required).
	JWTSecret string
	TokenTTL  time.Duration

	UploadDir     string
	PublicBaseURL string

	// Password given to the fallback "admin" account when no user snapshot exists.
	BootstrapAdminPassword string

	// RabbitMQ; tile events are disabled when TileEventsURL is empty.
	TileEventsURL   string
	TileEventsQueue string

	// Used only by cmd/migrate.
	SnapshotDir string

	CORSAllowOrigins string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from v after registering defaults and enabling
// environment lookup.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8001")
	v.SetDefault("DEBUG", false)
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "portal.db")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	v.SetDefault("UPLOAD_DIR", "static/uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8001")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin888")
	v.SetDefault("TILE_EVENTS_QUEUE", "tile_events")
	v.SetDefault("SNAPSHOT_DIR", ".")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:                v.GetString("APP_PORT"),
		Debug:                  v.GetBool("DEBUG"),
		DBDriver:               strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:            v.GetString("DATABASE_DSN"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		TokenTTL:               time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
		UploadDir:              v.GetString("UPLOAD_DIR"),
		PublicBaseURL:          strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		BootstrapAdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		TileEventsURL:          v.GetString("TILE_EVENTS_URL"),
		TileEventsQueue:        v.GetString("TILE_EVENTS_QUEUE"),
		SnapshotDir:            v.GetString("SNAPSHOT_DIR"),
		CORSAllowOrigins:       v.GetString("CORS_ALLOW_ORIGINS"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN must be set")
	}
	switch c.DBDriver {
	case DriverSQLite, DriverSQLitePureGo, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.BootstrapAdminPassword == "" {
		return errors.New("config: BOOTSTRAP_ADMIN_PASSWORD must not be empty")
	}
	return nil
}
