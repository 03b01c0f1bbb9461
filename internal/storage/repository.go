// Package storage persists spending entries and monthly limits in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spendbot/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
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

// InsertEntry appends one spending entry and fills in its assigned ID.
func (r *SQLiteRepository) InsertEntry(ctx context.Context, e *core.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO spending_log (owner_id, amount_cents, category, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.OwnerID, e.Amount.Cents, e.Category, e.Note, e.CreatedAt.Format(core.TimeLayout))
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("entry id: %w", err)
	}
	e.ID = id

	return nil
}

// AggregateByCategory sums the owner's entries inside the window, grouped
// by category. Rows come back ordered by summed amount descending with
// ties broken by category name, so output is deterministic regardless of
// insertion order. No matching rows is an empty slice, not an error.
//
// The now argument anchors the window: the trailing seven days before it,
// or the calendar month containing it.
func (r *SQLiteRepository) AggregateByCategory(ctx context.Context, ownerID int64, window core.Window, now time.Time) ([]core.CategoryAmount, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var since time.Time
	switch window {
	case core.WindowWeek:
		since = now.AddDate(0, 0, -7)
	case core.WindowMonth:
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents) AS total
		FROM spending_log
		WHERE owner_id = ? AND created_at >= ?
		GROUP BY category
		ORDER BY total DESC, category ASC`,
		ownerID, since.Format(core.TimeLayout))
	if err != nil {
		return nil, fmt.Errorf("aggregate by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryAmount
	for rows.Next() {
		var row core.CategoryAmount
		if err := rows.Scan(&row.Category, &row.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read category totals: %w", err)
	}

	return totals, nil
}

// UpsertLimit stores the owner's monthly limit, replacing any previous one.
func (r *SQLiteRepository) UpsertLimit(ctx context.Context, limit core.MonthlyLimit) error {
	if err := limit.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO monthly_limits (owner_id, limit_cents)
		VALUES (?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET limit_cents = excluded.limit_cents`,
		limit.OwnerID, limit.Amount.Cents)
	if err != nil {
		return fmt.Errorf("upsert limit: %w", err)
	}

	return nil
}

// GetLimit returns the owner's stored limit, or ok=false when none is set.
func (r *SQLiteRepository) GetLimit(ctx context.Context, ownerID int64) (core.MonthlyLimit, bool, error) {
	limit := core.MonthlyLimit{OwnerID: ownerID}
	err := r.db.QueryRowContext(ctx,
		`SELECT limit_cents FROM monthly_limits WHERE owner_id = ?`,
		ownerID).Scan(&limit.Amount.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.MonthlyLimit{}, false, nil
	}
	if err != nil {
		return core.MonthlyLimit{}, false, fmt.Errorf("get limit: %w", err)
	}
	return limit, true, nil
}

// DeleteAllForOwner removes every entry and the limit belonging to the
// owner. Deleting an owner with no data is a no-op, not an error.
func (r *SQLiteRepository) DeleteAllForOwner(ctx context.Context, ownerID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM spending_log WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_limits WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete limit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
