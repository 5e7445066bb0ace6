package db

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"gocmmi/internal/config"
	"gocmmi/internal/errors"
)

// Open connects to the configured database. The sqlite driver keeps the
// original single-file deployment working; postgres is the server option.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)
	switch cfg.Driver {
	case "sqlite":
		conn, err = sqlx.Connect("sqlite", cfg.Path)
	case "postgres":
		conn, err = sqlx.Connect("postgres", cfg.URL)
	default:
		return nil, errors.ConfigInvalid("unsupported database driver: " + cfg.Driver)
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, errors.DatabaseError("failed to ping database", err)
	}
	return conn, nil
}

// schema is portable across sqlite and postgres: UUIDs as TEXT, JSON blobs
// as TEXT, timestamps as TIMESTAMP.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id                   TEXT PRIMARY KEY,
		project_id           TEXT,
		project_name         TEXT NOT NULL DEFAULT '',
		status               TEXT NOT NULL DEFAULT 'draft',
		answers_json         TEXT NOT NULL DEFAULT '{}',
		kpa_scores_json      TEXT NOT NULL DEFAULT '{}',
		recommendations_json TEXT NOT NULL DEFAULT '{}',
		overall_json         TEXT NOT NULL DEFAULT '{}',
		created_at           TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_project ON assessments (project_id)`,
}

// EnsureSchema creates the tables when they do not exist yet
func EnsureSchema(conn *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return errors.DatabaseError("schema bootstrap failed", err)
		}
	}
	return nil
}
