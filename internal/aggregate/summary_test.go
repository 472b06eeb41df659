package aggregate

import (
	"errors"
	"testing"
	"time"

	"healthyledger/internal/core"
)

func TestSummarizeScenario(t *testing.T) {
	d, err := Summarize(scenarioLedger(), core.NewDate(2024, time.January, 1), core.DefaultGoals())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !d.AllIncome.Equal(dec("5000")) || !d.AllSpent.Equal(dec("300")) || !d.Net().Equal(dec("4700")) {
		t.Fatalf("unexpected all-time totals: %+v", d)
	}
	if d.TodayTotals.Calories != 390 || !d.TodayTotals.Expense.Equal(dec("100")) || d.TodayTotals.Entries != 2 {
		t.Fatalf("unexpected today totals: %+v", d.TodayTotals)
	}
	if d.MonthTotals.Calories != 570 || !d.MonthTotals.Expense.Equal(dec("300")) || !d.MonthTotals.Income.Equal(dec("5000")) {
		t.Fatalf("unexpected month totals: %+v", d.MonthTotals)
	}
	if d.CalorieGoal.Exceeded || d.CalorieGoal.Ratio != 390.0/2000.0 {
		t.Fatalf("unexpected calorie goal: %+v", d.CalorieGoal)
	}
	if d.ExpenseGoal.Exceeded || d.ExpenseGoal.Ratio != 0.2 {
		t.Fatalf("unexpected expense goal: %+v", d.ExpenseGoal)
	}
	if len(d.DailyExpense) != 2 || len(d.DailyIncome) != 1 {
		t.Fatalf("unexpected series: %v %v", d.DailyExpense, d.DailyIncome)
	}
}

func TestSummarizeOtherMonthIsEmpty(t *testing.T) {
	d, err := Summarize(scenarioLedger(), core.NewDate(2024, time.March, 3), core.DefaultGoals())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if d.MonthTotals.Entries != 0 || !d.MonthTotals.Expense.IsZero() || d.TodayTotals.Calories != 0 {
		t.Fatalf("expected empty windows, got %+v", d)
	}
	if len(d.DailyExpense) != 0 || d.CalorieGoal.Ratio != 0 {
		t.Fatalf("expected empty series and zero progress")
	}
}

func TestSummarizeRejectsMalformedLedger(t *testing.T) {
	l := scenarioLedger()
	l[2].Amount = dec("-1")
	_, err := Summarize(l, core.NewDate(2024, time.January, 1), core.DefaultGoals())
	var entryErr *core.EntryError
	if !errors.As(err, &entryErr) || entryErr.Index != 2 || !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("expected negative amount at index 2, got %v", err)
	}
}

func TestSummarizeRejectsZeroCalorieTarget(t *testing.T) {
	goals := core.GoalSettings{TargetCalories: 0, TargetExpense: 500}
	if _, err := Summarize(nil, core.NewDate(2024, time.January, 1), goals); !errors.Is(err, core.ErrInvalidPrecondition) {
		t.Fatalf("expected ErrInvalidPrecondition, got %v", err)
	}
}
