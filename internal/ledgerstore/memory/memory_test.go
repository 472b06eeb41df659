package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"healthyledger/internal/core"
)

func entry(day int, amount string) core.Entry {
	return core.Entry{
		Date:     core.NewDate(2024, time.January, day),
		Kind:     core.Expense,
		Category: "Food and Drinks",
		Amount:   decimal.RequireFromString(amount),
		MenuItem: core.NoMenuItem,
	}
}

func TestLoadUnknownUserIsEmpty(t *testing.T) {
	s := New()
	l, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l == nil || len(l) != 0 {
		t.Fatalf("expected empty non-nil ledger, got %#v", l)
	}
}

func TestSaveOverwritesAndCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	l := core.Ledger{entry(1, "10"), entry(2, "20")}
	if err := s.Save(ctx, "alice", l); err != nil {
		t.Fatalf("save: %v", err)
	}
	l[0].Description = "changed after save"

	got, _ := s.Load(ctx, "alice")
	if len(got) != 2 || got[0].Description != "" {
		t.Fatalf("store must keep its own copy: %v", got)
	}
	got[1].Description = "changed after load"
	again, _ := s.Load(ctx, "alice")
	if again[1].Description != "" {
		t.Fatalf("load must return a copy")
	}

	if err := s.Save(ctx, "alice", core.Ledger{entry(3, "1")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ = s.Load(ctx, "alice")
	if len(got) != 1 || got[0].Date.Day() != 3 {
		t.Fatalf("save must overwrite the whole snapshot: %v", got)
	}
	if s.Saves() != 2 {
		t.Fatalf("saves = %d", s.Saves())
	}
}

func TestSaveRejectsMalformed(t *testing.T) {
	bad := entry(1, "1")
	bad.Amount = decimal.RequireFromString("-1")
	if err := New().Save(context.Background(), "alice", core.Ledger{bad}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListUsersSorted(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, u := range []string{"carol", "alice", "bob"} {
		if err := s.Save(ctx, u, nil); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	users, _ := s.ListUsers(ctx)
	if len(users) != 3 || users[0] != "alice" || users[2] != "carol" {
		t.Fatalf("unexpected users: %v", users)
	}
}
