package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frankiemarley/web-scraping-project-tutorial/internal/core"

	_ "modernc.org/sqlite"
)

// legacyLayout is how pandas' to_sql writes datetime64 columns.
const legacyLayout = "2006-01-02 15:04:05"

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
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

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceAll discards the table contents and writes records in a single
// transaction. On failure the previous contents are left untouched.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []core.Record) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				slog.ErrorContext(ctx, "Rollback failed", "error", rbErr)
			}
		}
	}()

	q := r.queries.WithTx(tx)

	deleted, err := q.DeleteAllRevenue(ctx)
	if err != nil {
		return fmt.Errorf("clear revenue: %w", err)
	}

	for _, rec := range records {
		if err = rec.Validate(); err != nil {
			return fmt.Errorf("insert revenue %s: %w", rec.Period, err)
		}
		if err = q.InsertRevenue(ctx, InsertRevenueParams{
			Date:    rec.Period.String(),
			Revenue: rec.Amount,
		}); err != nil {
			return fmt.Errorf("insert revenue %s: %w", rec.Period, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit revenue: %w", err)
	}

	slog.InfoContext(ctx, "Revenue table replaced",
		"deleted", deleted,
		"inserted", len(records))

	return nil
}

// ReadAll returns every persisted record ordered by period.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.queries.ListRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}

	records := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		period, err := parsePeriod(row.Date)
		if err != nil {
			return nil, fmt.Errorf("read revenue row %q: %w", row.Date, err)
		}
		records = append(records, core.Record{Period: period, Amount: row.Revenue})
	}
	return records, nil
}

// Count returns the number of persisted records.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountRevenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("count revenue: %w", err)
	}
	return n, nil
}

// parsePeriod accepts the canonical date and the timestamp form written by
// earlier tooling against the same file.
func parsePeriod(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{core.DateLayout, legacyLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return core.NewDate(y, int(m), d), nil
		}
	}
	return core.Date{}, fmt.Errorf("%w: stored date %q", core.ErrParse, s)
}
