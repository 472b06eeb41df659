package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"0", "0", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{".5", "0.5", true},
		{"5.", "5", true},
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"1e3", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,000.50", "", false},
		{"1,000", "", false},
		{"5,000", "", false},
		{"12,500", "", false},
		{"1,2,3", "", false},
		{"12,50", "12.5", true},
		{".", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMenuLookup(t *testing.T) {
	cases := map[string]int{
		"Coffee":           180,
		"Khao Soi Chicken": 390,
		"Water":            0,
		NoMenuItem:         0,
		"unknown item":     0,
	}
	for item, want := range cases {
		if got := CalorieFor(item); got != want {
			t.Fatalf("CalorieFor(%q) = %d, want %d", item, got, want)
		}
	}
	items := MenuItems()
	if len(items) != 7 || items[0] != "Rice Soup with Fish" {
		t.Fatalf("unexpected menu order: %v", items)
	}
	for _, it := range items {
		if !IsMenuItem(it) {
			t.Fatalf("%q listed but not in table", it)
		}
	}
	items[0] = "mutated"
	if MenuItems()[0] != "Rice Soup with Fish" {
		t.Fatalf("MenuItems must return a copy")
	}
}

func TestExpenseCategories(t *testing.T) {
	cats := ExpenseCategories()
	if len(cats) != 6 || cats[0] != "Food and Drinks" || cats[5] != "Other Expenses (please specify)" {
		t.Fatalf("unexpected categories: %v", cats)
	}
	if IsExpenseCategory(NoCategory) {
		t.Fatalf("sentinel must not be an expense category")
	}
}

func TestNormalizeUserID(t *testing.T) {
	good := map[string]string{"alice": "alice", "  bob smith ": "bob smith", "ploy_2": "ploy_2"}
	for in, want := range good {
		got, err := NormalizeUserID(in)
		if err != nil || got != want {
			t.Fatalf("%q expected %q, got %q (err=%v)", in, want, got, err)
		}
	}
	for _, in := range []string{"", "   ", "..", "a/b", `a\b`, "tab\tname", "x:y", strings.Repeat("x", 65)} {
		_, err := NormalizeUserID(in)
		if !errors.Is(err, ErrInvalidUser) {
			t.Fatalf("%q expected ErrInvalidUser, got %v", in, err)
		}
		if strings.Contains(err.Error(), "\n") {
			t.Fatalf("%q error spans lines: %q", in, err)
		}
	}
}

func TestGoalSettingsValidate(t *testing.T) {
	if err := DefaultGoals().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}
	bads := []GoalSettings{
		{TargetCalories: 99, TargetExpense: 500},
		{TargetCalories: 5001, TargetExpense: 500},
		{TargetCalories: 0, TargetExpense: 500},
		{TargetCalories: 2000, TargetExpense: -1},
		{TargetCalories: 2000, TargetExpense: 100001},
	}
	for i, g := range bads {
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
