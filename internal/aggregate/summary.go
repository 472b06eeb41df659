package aggregate

import (
	"github.com/shopspring/decimal"

	"healthyledger/internal/core"
)

// PeriodTotals are the metrics shown for one window (today or this month).
type PeriodTotals struct {
	Calories int
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Entries  int
}

// Dashboard holds every value one dashboard refresh needs.
type Dashboard struct {
	Today     core.Date
	Month     core.YearMonth
	Goals     core.GoalSettings
	Entries   int
	AllIncome decimal.Decimal
	AllSpent  decimal.Decimal

	TodayTotals PeriodTotals
	MonthTotals PeriodTotals

	CalorieGoal Progress
	ExpenseGoal Progress

	DailyExpense []DailyPoint
	DailyIncome  []DailyPoint
	Categories   []CategoryAmount
}

// Net is all-time income minus all-time expense.
func (d Dashboard) Net() decimal.Decimal {
	return d.AllIncome.Sub(d.AllSpent)
}

func periodTotals(entries []core.Entry) PeriodTotals {
	return PeriodTotals{
		Calories: SumCalories(entries),
		Income:   TotalByKind(entries, core.Income),
		Expense:  TotalByKind(entries, core.Expense),
		Entries:  len(entries),
	}
}

// Summarize validates the ledger and computes the dashboard for today.
// A malformed entry or invalid goal fails the whole call; no partial
// dashboard is returned.
func Summarize(ledger core.Ledger, today core.Date, goals core.GoalSettings) (Dashboard, error) {
	if err := ledger.Validate(); err != nil {
		return Dashboard{}, err
	}

	todays := FilterByDate(ledger, today)
	month := today.YearMonth()
	months := FilterByMonth(ledger, month)

	d := Dashboard{
		Today:        today,
		Month:        month,
		Goals:        goals,
		Entries:      len(ledger),
		AllIncome:    TotalByKind(ledger, core.Income),
		AllSpent:     TotalByKind(ledger, core.Expense),
		TodayTotals:  periodTotals(todays),
		MonthTotals:  periodTotals(months),
		DailyExpense: DailySeries(months, core.Expense),
		DailyIncome:  DailySeries(months, core.Income),
		Categories:   CategoryBreakdown(months),
	}

	var err error
	if d.CalorieGoal, err = GoalProgress(d.TodayTotals.Calories, goals.TargetCalories); err != nil {
		return Dashboard{}, err
	}
	if d.ExpenseGoal, err = ExpenseProgress(d.TodayTotals.Expense, goals.TargetExpense); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
