package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Driver names understood by NewBunDB.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// OpenSQLite opens a SQLite database at the given DSN using the mattn driver.
// Pass "file::memory:?cache=shared" for an in-memory database.
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	return db, nil
}

// NewBunDB wraps a raw *sql.DB in a bun.DB with the dialect matching the
// driver name. SQLite deployments should cap open connections at 1 when
// using a shared in-memory database.
func NewBunDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("storage: sql db is nil")
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "sqlite", "":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres, "postgresql", "pg":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}
