package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"

	// Database drivers for the supported dialects. SQLite is the pure Go
	// driver (no CGO).
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures what differs between the supported databases.
type Dialect interface {
	// Name is the ent dialect name used to build queries.
	Name() string

	// DriverName is the database/sql driver name.
	DriverName() string

	// Configure applies connection pool settings and session options.
	Configure(db *sql.DB) error
}

// DialectFor returns the dialect for a driver name as given on the
// command line or in the environment.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3", "":
		return sqliteDialect{}, nil
	case "postgres", "postgresql", "pg":
		return postgresDialect{}, nil
	case "mysql", "mariadb":
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return dialect.SQLite }
func (sqliteDialect) DriverName() string { return "sqlite" }

// Configure pins SQLite to a single connection, so in-memory databases
// survive and writers never contend for the file lock, then applies the
// recommended pragmas.
func (sqliteDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

type postgresDialect struct{}

func (postgresDialect) Name() string       { return dialect.Postgres }
func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
	return nil
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return dialect.MySQL }
func (mysqlDialect) DriverName() string { return "mysql" }

func (mysqlDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
	return nil
}
