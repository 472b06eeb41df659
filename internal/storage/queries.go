package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// EntryRow mirrors one row of the entries table.
type EntryRow struct {
	UserID      string
	Position    int64
	Date        string
	Kind        string
	Category    string
	Description string
	Amount      string
	MenuItem    string
	Calories    int64
}

const upsertUser = `INSERT INTO users (id) VALUES (?) ON CONFLICT(id) DO NOTHING`

func (q *Queries) UpsertUser(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, upsertUser, id)
	return err
}

const deleteEntriesForUser = `DELETE FROM entries WHERE user_id = ?`

func (q *Queries) DeleteEntriesForUser(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteEntriesForUser, userID)
	return err
}

const insertEntry = `INSERT INTO entries (user_id, position, date, kind, category, description, amount, menu_item, calories)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertEntry(ctx context.Context, arg EntryRow) error {
	_, err := q.db.ExecContext(ctx, insertEntry,
		arg.UserID, arg.Position, arg.Date, arg.Kind, arg.Category,
		arg.Description, arg.Amount, arg.MenuItem, arg.Calories)
	return err
}

const listEntriesForUser = `SELECT user_id, position, date, kind, category, description, amount, menu_item, calories
FROM entries WHERE user_id = ? ORDER BY position`

func (q *Queries) ListEntriesForUser(ctx context.Context, userID string) ([]EntryRow, error) {
	rows, err := q.db.QueryContext(ctx, listEntriesForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []EntryRow
	for rows.Next() {
		var i EntryRow
		if err := rows.Scan(&i.UserID, &i.Position, &i.Date, &i.Kind, &i.Category,
			&i.Description, &i.Amount, &i.MenuItem, &i.Calories); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listUsers = `SELECT id FROM users ORDER BY id`

func (q *Queries) ListUsers(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
