package repositories

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no live row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write would break a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)

// atomically runs fn in a single transaction. Postgres is asked for
// serializable isolation; SQLite transactions are serializable already.
func atomically(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db.Dialector.Name() == "postgres" {
		return db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}
	return db.Transaction(fn)
}
