package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"

	_ "modernc.org/sqlite"
)

var _ ledgerstore.Backend = (*SQLiteRepository)(nil)

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
	// one writer at a time avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Load returns the user's entries in recorded order.
func (r *SQLiteRepository) Load(ctx context.Context, user string) (core.Ledger, error) {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return nil, err
	}
	rows, err := r.queries.ListEntriesForUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	l := make(core.Ledger, 0, len(rows))
	for _, row := range rows {
		e, err := entryFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", row.Position, err)
		}
		l = append(l, e)
	}
	return l, nil
}

// Save replaces the user's entries in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, user string, l core.Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.UpsertUser(ctx, id); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	if err := q.DeleteEntriesForUser(ctx, id); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	for i, e := range l {
		if err := q.InsertEntry(ctx, rowFromEntry(id, i, e)); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.DebugContext(ctx, "Ledger saved to SQLite", "user", id, "entries", len(l))
	return nil
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]string, error) {
	users, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func rowFromEntry(user string, pos int, e core.Entry) EntryRow {
	return EntryRow{
		UserID:      user,
		Position:    int64(pos),
		Date:        e.Date.String(),
		Kind:        e.Kind.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount.String(),
		MenuItem:    e.MenuItem,
		Calories:    int64(e.Calories),
	}
}

func entryFromRow(row EntryRow) (core.Entry, error) {
	date, err := core.ParseDate(row.Date)
	if err != nil {
		return core.Entry{}, err
	}
	kind, err := core.ParseKind(row.Kind)
	if err != nil {
		return core.Entry{}, err
	}
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: %q", core.ErrInvalidAmount, row.Amount)
	}
	e := core.Entry{
		Date:        date,
		Kind:        kind,
		Category:    row.Category,
		Description: row.Description,
		Amount:      amount,
		MenuItem:    row.MenuItem,
		Calories:    int(row.Calories),
	}
	return e, e.Validate()
}
