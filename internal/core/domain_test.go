package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		out Date
		ok  bool
	}{
		{"2024-01-01", NewDate(2024, time.January, 1), true},
		{"2024-01-15 00:00:00", NewDate(2024, time.January, 15), true},
		{"2024-01-15 23:59:59", NewDate(2024, time.January, 15), true},
		{"2024-02-29T10:00:00Z", NewDate(2024, time.February, 29), true},
		{" 2024-03-01 ", NewDate(2024, time.March, 1), true},
		{"2024-13-01", Date{}, false},
		{"01/02/2024", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.out) {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateOfTruncatesClock(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	d := DateOf(time.Date(2024, time.January, 1, 23, 30, 0, 0, loc))
	if !d.Equal(NewDate(2024, time.January, 1)) {
		t.Fatalf("unexpected date %v", d)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("expected UTC midnight, got %v", d.Time)
	}
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2024-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ym != NewYearMonth(2024, time.January) || ym.String() != "2024-01" {
		t.Fatalf("unexpected year-month %v", ym)
	}
	if !ym.Contains(NewDate(2024, time.January, 31)) {
		t.Fatalf("expected January to contain the 31st")
	}
	if ym.Contains(NewDate(2023, time.January, 1)) || ym.Contains(NewDate(2024, time.February, 1)) {
		t.Fatalf("expected other months to be excluded")
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"Income", "Expense", " Expense "} {
		if _, err := ParseKind(s); err != nil {
			t.Fatalf("%q expected ok, got %v", s, err)
		}
	}
	for _, s := range []string{"", "income", "Refund"} {
		if _, err := ParseKind(s); !errors.Is(err, ErrMalformedEntry) {
			t.Fatalf("%q expected malformed entry, got %v", s, err)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	good := Entry{
		Date:     NewDate(2024, time.January, 1),
		Kind:     Expense,
		Category: "Food and Drinks",
		Amount:   decimal.NewFromInt(100),
		MenuItem: "Coffee",
		Calories: 180,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zeroAmount := good
	zeroAmount.Amount = decimal.Zero
	if err := zeroAmount.Validate(); err != nil {
		t.Fatalf("zero amount should be accepted, got %v", err)
	}

	bads := []struct {
		mutate func(*Entry)
		want   error
	}{
		{func(e *Entry) { e.Date = Date{} }, ErrMissingDate},
		{func(e *Entry) { e.Kind = "Refund" }, ErrInvalidKind},
		{func(e *Entry) { e.Amount = decimal.NewFromInt(-1) }, ErrNegativeAmount},
		{func(e *Entry) { e.Calories = -5 }, ErrNegativeCalories},
	}
	for i, tc := range bads {
		e := good
		tc.mutate(&e)
		err := e.Validate()
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrMalformedEntry) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestNewEntry(t *testing.T) {
	d := NewDate(2024, time.January, 1)

	e, err := NewEntry(d, Expense, "Food and Drinks", " lunch ", decimal.NewFromInt(100), "Khao Soi Chicken")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if e.Calories != 390 || e.Description != "lunch" {
		t.Fatalf("unexpected entry %+v", e)
	}

	inc, err := NewEntry(d, Income, "Food and Drinks", "salary", decimal.NewFromInt(5000), "")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if inc.Category != NoCategory || inc.MenuItem != NoMenuItem || inc.Calories != 0 {
		t.Fatalf("income should carry sentinels, got %+v", inc)
	}

	if _, err := NewEntry(d, Expense, "Gambling", "", decimal.NewFromInt(1), ""); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := NewEntry(d, Expense, "Household Items", "", decimal.NewFromInt(-1), ""); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	long := make([]rune, 201)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := NewEntry(d, Income, "", string(long), decimal.NewFromInt(1), ""); !errors.Is(err, ErrDescriptionLong) {
		t.Fatalf("expected ErrDescriptionLong, got %v", err)
	}
}

func TestLedgerValidateReportsIndex(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2024, time.January, 1), Kind: Income, Category: NoCategory, Amount: decimal.NewFromInt(1), MenuItem: NoMenuItem},
		{Date: NewDate(2024, time.January, 2), Kind: "Other", Amount: decimal.NewFromInt(1)},
	}
	err := l.Validate()
	var entryErr *EntryError
	if !errors.As(err, &entryErr) || entryErr.Index != 1 {
		t.Fatalf("expected EntryError at index 1, got %v", err)
	}
	if !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("expected ErrMalformedEntry, got %v", err)
	}
}

func TestLedgerAppendDoesNotAlias(t *testing.T) {
	base := make(Ledger, 1, 4)
	base[0] = Entry{Kind: Income}
	a := base.Append(Entry{Kind: Expense, Description: "a"})
	b := base.Append(Entry{Kind: Expense, Description: "b"})
	if len(base) != 1 || a[1].Description != "a" || b[1].Description != "b" {
		t.Fatalf("append aliased: base=%v a=%v b=%v", base, a, b)
	}
}
