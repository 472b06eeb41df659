package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

type (
	// Kind classifies an entry as money coming in or going out.
	Kind string

	// Date is a calendar date. The wrapped time is always midnight UTC.
	Date struct {
		time.Time
	}

	// YearMonth identifies a calendar month.
	YearMonth struct {
		Year  int
		Month time.Month
	}

	Entry struct {
		Date        Date
		Kind        Kind
		Category    string // expense category, NoCategory for income
		Description string
		Amount      decimal.Decimal
		MenuItem    string // NoMenuItem when nothing was eaten or drunk
		Calories    int    // fixed at record time from the menu table
	}

	// Ledger is the ordered record of one user's entries, in insertion order.
	Ledger []Entry
)

var (
	ErrMalformedEntry      = errors.New("malformed entry")
	ErrInvalidPrecondition = errors.New("invalid precondition")

	ErrMissingDate      = fmt.Errorf("%w: missing date", ErrMalformedEntry)
	ErrInvalidKind      = fmt.Errorf("%w: kind must be Income or Expense", ErrMalformedEntry)
	ErrNegativeAmount   = fmt.Errorf("%w: negative amount", ErrMalformedEntry)
	ErrNegativeCalories = fmt.Errorf("%w: negative calories", ErrMalformedEntry)
	ErrInvalidCategory  = fmt.Errorf("%w: unknown expense category", ErrMalformedEntry)
	ErrDescriptionLong  = fmt.Errorf("%w: description too long (max 200 characters)", ErrMalformedEntry)

	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

// EntryError reports which entry of a ledger failed validation.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// ParseKind accepts exactly "Income" or "Expense".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (k Kind) String() string {
	return string(k)
}

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate reads a date, truncating any time component.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// YearMonth returns the month containing d.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// ParseYearMonth reads "2006-01".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func (ym YearMonth) Contains(d Date) bool {
	return d.Year() == ym.Year && d.Month() == ym.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Validate checks the invariants every stored entry must hold.
func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, string(e.Kind))
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Calories < 0 {
		return ErrNegativeCalories
	}
	return nil
}

// NewEntry builds an entry from form input. Income entries get the category
// sentinel, expense entries must use a known category, and calories come
// from the menu table.
func NewEntry(date Date, kind Kind, category, description string, amount decimal.Decimal, menuItem string) (Entry, error) {
	if !kind.Valid() {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, string(kind))
	}
	category = strings.TrimSpace(category)
	if kind == Income {
		category = NoCategory
	} else if !IsExpenseCategory(category) {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > 200 {
		return Entry{}, ErrDescriptionLong
	}
	menuItem = strings.TrimSpace(menuItem)
	if menuItem == "" {
		menuItem = NoMenuItem
	}
	e := Entry{
		Date:        date,
		Kind:        kind,
		Category:    category,
		Description: description,
		Amount:      amount,
		MenuItem:    menuItem,
		Calories:    CalorieFor(menuItem),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate reports the first malformed entry as an *EntryError.
func (l Ledger) Validate() error {
	for i, e := range l {
		if err := e.Validate(); err != nil {
			return &EntryError{Index: i, Err: err}
		}
	}
	return nil
}

// Append returns a new ledger with e added at the end. The receiver is not modified.
func (l Ledger) Append(e Entry) Ledger {
	out := make(Ledger, len(l), len(l)+1)
	copy(out, l)
	return append(out, e)
}

func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}

// Equal compares two entries field by field, amounts by value.
func (e Entry) Equal(o Entry) bool {
	return e.Date.Equal(o.Date) &&
		e.Kind == o.Kind &&
		e.Category == o.Category &&
		e.Description == o.Description &&
		e.Amount.Equal(o.Amount) &&
		e.MenuItem == o.MenuItem &&
		e.Calories == o.Calories
}
