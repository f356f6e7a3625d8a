// Package backend selects and builds the durable-storage backend the
// transaction store runs on.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/makuta3933/budget/internal/config"
	"github.com/makuta3933/budget/internal/ledger"
	"github.com/makuta3933/budget/internal/storage"
	"github.com/makuta3933/budget/internal/storage/memory"
)

// Type identifies a storage backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result bundles the repository with its optional cleanup.
type Result struct {
	Repository ledger.Repository
	Cleanup    CleanupFunc
}

// New builds the repository named by the configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := Type(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch backendType {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Repository: repo, Cleanup: repo.Close}, nil

	default:
		logger.Info("Initialized memory backend")
		return &Result{Repository: memory.New()}, nil
	}
}
