package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
)

func sample() core.Ledger {
	return core.Ledger{
		{Date: core.NewDate(2024, time.January, 1), Kind: core.Expense, Category: "Food and Drinks", Description: "lunch, with friends", Amount: decimal.RequireFromString("100.25"), MenuItem: "Khao Soi Chicken", Calories: 390},
		{Date: core.NewDate(2024, time.January, 1), Kind: core.Income, Category: core.NoCategory, Description: "salary", Amount: decimal.RequireFromString("5000"), MenuItem: core.NoMenuItem, Calories: 0},
		{Date: core.NewDate(2024, time.February, 29), Kind: core.Expense, Category: "Medical Expenses", Description: `said "ouch"`, Amount: decimal.Zero, MenuItem: "Water", Calories: 0},
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := sample()
	if err := s.Save(ctx, "alice", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFileFormat(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(dir)
	if err := s.Save(context.Background(), "bob", sample()[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "data_bob.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[0] != "date_,type_,expense_category,lists,amount,menu,calories" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != `2024-01-01,Expense,Food and Drinks,"lunch, with friends",100.25,Khao Soi Chicken,390` {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s, _ := New(t.TempDir())
	l, err := s.Load(context.Background(), "ghost")
	if err != nil || l == nil || len(l) != 0 {
		t.Fatalf("expected empty ledger, got %v (err=%v)", l, err)
	}
}

// Files written by the earlier pandas-based tool carry timestamps and floats.
func TestReadLegacyFile(t *testing.T) {
	in := "\ufeffdate_,type_,expense_category,lists,amount,menu,calories\n" +
		"2024-03-05 00:00:00,Expense,Food and Drinks,noodles,80.0,Khao Soi Chicken,390\n" +
		",,,,,,\n" +
		"2024-03-06 00:00:00,Income,,bonus,250.5,,0\n"
	l, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(l) != 2 {
		t.Fatalf("len = %d", len(l))
	}
	if !l[0].Date.Equal(core.NewDate(2024, time.March, 5)) || !l[0].Amount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("first = %+v", l[0])
	}
	if l[1].Category != core.NoCategory || l[1].MenuItem != core.NoMenuItem {
		t.Fatalf("empty cells must read back as sentinels: %+v", l[1])
	}
}

func TestReadRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"negative amount": "date_,type_,expense_category,lists,amount,menu,calories\n2024-01-01,Expense,Food and Drinks,x,-5,-,0\n",
		"unknown kind":    "date_,type_,expense_category,lists,amount,menu,calories\n2024-01-01,Gift,-,x,5,-,0\n",
		"bad date":        "date_,type_,expense_category,lists,amount,menu,calories\nyesterday,Income,-,x,5,-,0\n",
		"missing column":  "date_,type_,amount\n2024-01-01,Income,5\n",
	}
	for name, in := range cases {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	_, err := Read(strings.NewReader(cases["negative amount"]))
	if !errors.Is(err, ledgerstore.ErrBadRow) && !errors.Is(err, core.ErrMalformedEntry) {
		t.Fatalf("unexpected error type: %v", err)
	}
}

func TestListUsers(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(dir)
	ctx := context.Background()
	for _, u := range []string{"zoe", "adam"} {
		if err := s.Save(ctx, u, nil); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0] != "adam" || users[1] != "zoe" {
		t.Fatalf("users = %v", users)
	}
}

func TestRejectsUnsafeUser(t *testing.T) {
	s, _ := New(t.TempDir())
	if err := s.Save(context.Background(), "../escape", nil); err == nil {
		t.Fatalf("expected error")
	}
}
