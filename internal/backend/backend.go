// Package backend selects and constructs the persistence backend from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"outlay/internal/storage"
)

// Type identifies a supported storage backend.
type Type string

const (
	SQLite   Type = "sqlite"
	Postgres Type = "postgres"
)

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Postgres:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to open a backend.
type Config struct {
	Type         Type
	SQLiteDBPath string
	PostgresDSN  string
}

// Result bundles the opened store with its cleanup function.
type Result struct {
	Store   *storage.Repository
	Cleanup func() error
}

// Open creates the configured backend, running migrations as a side effect.
func Open(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		repo, err := storage.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	case Postgres:
		repo, err := storage.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		logger.Info("Initialized postgres backend")
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
