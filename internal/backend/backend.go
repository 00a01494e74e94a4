// Package backend selects and constructs the ledger source configured for
// the process: a CSV file, a SQLite database or a Google Sheets range.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finsight/internal/ledger"
	"finsight/internal/ledger/csvfile"
	"finsight/internal/ledger/google"
	"finsight/internal/storage"
)

type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs; only the fields for the selected
// type are read.
type Config struct {
	Type Type

	// CSV specific
	CSVPath string

	// SQLite specific
	SQLiteDBPath string
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result pairs a constructed loader with its optional cleanup.
type Result struct {
	Loader  ledger.Loader
	Cleanup CleanupFunc
}

// Factory creates ledger loaders based on configuration.
type Factory interface {
	CreateLoader(ctx context.Context, config Config) (*Result, error)
}

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateLoader(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case CSVBackend:
		f.logger.Info("Initialized CSV ledger backend", "path", config.CSVPath)
		return &Result{Loader: csvfile.New(config.CSVPath)}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite ledger backend", "db_path", config.SQLiteDBPath)
		return &Result{Loader: repo, Cleanup: repo.Close}, nil

	case SheetsBackend:
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets ledger backend")
		return &Result{Loader: cli}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
