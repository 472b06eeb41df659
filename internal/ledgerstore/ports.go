// Package ledgerstore defines the persistence port for per-user ledgers and
// the tabular row format shared by the file and spreadsheet backends.
package ledgerstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"healthyledger/internal/core"
)

// Ports for outbound adapters.
type (
	// Store persists whole ledger snapshots. Save overwrites everything
	// previously stored for the user; there is no cross-process locking, so
	// two writers for the same user race and the last save wins.
	Store interface {
		// Load returns the user's ledger, or an empty ledger if none was saved.
		Load(ctx context.Context, user string) (core.Ledger, error)
		Save(ctx context.Context, user string, l core.Ledger) error
	}

	// UserLister enumerates users that have a stored ledger.
	UserLister interface {
		ListUsers(ctx context.Context) ([]string, error)
	}

	// Backend is what the application needs from a configured store.
	Backend interface {
		Store
		UserLister
	}
)

// Column names of the tabular format, in order.
const (
	ColDate     = "date_"
	ColKind     = "type_"
	ColCategory = "expense_category"
	ColDesc     = "lists"
	ColAmount   = "amount"
	ColMenu     = "menu"
	ColCalories = "calories"
)

// Header is the first row written by tabular backends.
var Header = []string{ColDate, ColKind, ColCategory, ColDesc, ColAmount, ColMenu, ColCalories}

// ErrBadRow marks a stored row that cannot be decoded into an entry.
var ErrBadRow = errors.New("bad ledger row")

// EncodeRow renders an entry as one row in Header order.
func EncodeRow(e core.Entry) []string {
	return []string{
		e.Date.String(),
		e.Kind.String(),
		e.Category,
		e.Description,
		e.Amount.String(),
		e.MenuItem,
		strconv.Itoa(e.Calories),
	}
}

// Columns maps header names to positions. Files written by older versions
// may order columns differently.
type Columns map[string]int

// ParseHeader locates every required column in a header row.
func ParseHeader(row []string) (Columns, error) {
	cols := Columns{}
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	var missing []string
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header missing %s", ErrBadRow, strings.Join(missing, ","))
	}
	return cols, nil
}

// DefaultColumns is the layout of rows written by EncodeRow.
func DefaultColumns() Columns {
	cols := Columns{}
	for i, name := range Header {
		cols[name] = i
	}
	return cols
}

func (c Columns) get(row []string, name string) string {
	i := c[name]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// DecodeRow parses one data row. Empty category and menu cells read back as
// the "-" sentinel; stored calories are kept as recorded.
func DecodeRow(cols Columns, row []string) (core.Entry, error) {
	date, err := core.ParseDate(cols.get(row, ColDate))
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	kind, err := core.ParseKind(cols.get(row, ColKind))
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	amount, err := core.ParseAmount(cols.get(row, ColAmount))
	if err != nil {
		return core.Entry{}, fmt.Errorf("%w: %v", ErrBadRow, err)
	}
	calories := 0
	if s := cols.get(row, ColCalories); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 {
			return core.Entry{}, fmt.Errorf("%w: calories %q", ErrBadRow, s)
		}
		calories = int(f)
	}
	e := core.Entry{
		Date:        date,
		Kind:        kind,
		Category:    orSentinel(cols.get(row, ColCategory)),
		Description: cols.get(row, ColDesc),
		Amount:      amount,
		MenuItem:    orSentinel(cols.get(row, ColMenu)),
		Calories:    calories,
	}
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	return e, nil
}

// DecodeRows parses a full table whose first row is the header. Blank rows
// are skipped. An empty table is an empty ledger.
func DecodeRows(rows [][]string) (core.Ledger, error) {
	if len(rows) == 0 {
		return core.Ledger{}, nil
	}
	cols, err := ParseHeader(rows[0])
	if err != nil {
		return nil, err
	}
	l := make(core.Ledger, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		e, err := DecodeRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		l = append(l, e)
	}
	return l, nil
}

// EncodeRows renders a ledger as a table with the header first.
func EncodeRows(l core.Ledger) [][]string {
	rows := make([][]string, 0, len(l)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, e := range l {
		rows = append(rows, EncodeRow(e))
	}
	return rows
}

func orSentinel(s string) string {
	if s == "" {
		return core.NoCategory
	}
	return s
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
