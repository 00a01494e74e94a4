// Package storage provides the SQLite ledger backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements ledger.Loader. Rows whose date cannot be parsed or whose
// kind falls outside the enumeration are dropped, mirroring the CSV loader.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Ledger, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount, category, kind FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out core.Ledger
	dropped := 0
	for rows.Next() {
		var dateStr, description, category, kindStr string
		var amount float64
		if err := rows.Scan(&dateStr, &description, &amount, &category, &kindStr); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			dropped++
			continue
		}
		tx := core.Transaction{
			Date:        core.NewDate(date.Year(), int(date.Month()), date.Day()),
			Description: description,
			Amount:      amount,
			Category:    category,
			Kind:        core.ParseKind(kindStr),
		}
		if err := tx.Validate(); err != nil {
			dropped++
			continue
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	slog.InfoContext(ctx, "Ledger loaded from SQLite",
		"transactions", len(out),
		"dropped_rows", dropped)
	return out, nil
}
