// Package aggregate turns a ledger snapshot into the summary values shown on
// the dashboard. Every function is pure: no I/O and no mutation of its input.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"healthyledger/internal/core"
)

// DailyPoint is one bar of a daily series.
type DailyPoint struct {
	Date  core.Date
	Total decimal.Decimal
}

// Progress is a goal comparison. Ratio is clamped to [0, 1]; Exceeded is
// strictly greater than the target.
type Progress struct {
	Ratio    float64
	Exceeded bool
}

// TotalByKind sums the amounts of all entries of the given kind.
func TotalByKind(entries []core.Entry, kind core.Kind) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Kind == kind {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// FilterByDate keeps entries recorded on exactly d, in their original order.
func FilterByDate(entries []core.Entry, d core.Date) []core.Entry {
	day := core.DateOf(d.Time)
	var out []core.Entry
	for _, e := range entries {
		if core.DateOf(e.Date.Time).Equal(day) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByMonth keeps entries whose date falls in ym, in their original order.
func FilterByMonth(entries []core.Entry, ym core.YearMonth) []core.Entry {
	var out []core.Entry
	for _, e := range entries {
		if ym.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// SumCalories adds up recorded calories; an empty slice sums to 0.
func SumCalories(entries []core.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total
}

// GoalProgress compares consumed calories against a positive target.
// A target of zero or less is the caller's bug and yields ErrInvalidPrecondition;
// goal settings never allow it.
func GoalProgress(consumed, target int) (Progress, error) {
	if target <= 0 {
		return Progress{}, fmt.Errorf("%w: calorie target must be positive, got %d", core.ErrInvalidPrecondition, target)
	}
	ratio := float64(consumed) / float64(target)
	return Progress{Ratio: clamp(ratio), Exceeded: consumed > target}, nil
}

// ExpenseProgress compares spending against a non-negative budget. With a
// zero budget any spending fills the bar.
func ExpenseProgress(spent decimal.Decimal, target int) (Progress, error) {
	if target < 0 {
		return Progress{}, fmt.Errorf("%w: expense target must not be negative, got %d", core.ErrInvalidPrecondition, target)
	}
	limit := decimal.NewFromInt(int64(target))
	if target == 0 {
		if spent.IsPositive() {
			return Progress{Ratio: 1, Exceeded: true}, nil
		}
		return Progress{}, nil
	}
	ratio, _ := spent.Div(limit).Float64()
	return Progress{Ratio: clamp(ratio), Exceeded: spent.GreaterThan(limit)}, nil
}

func clamp(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// DailySeries groups entries of kind by date and sums each day. Days without
// a matching entry are omitted. The result is sorted by ascending date.
func DailySeries(entries []core.Entry, kind core.Kind) []DailyPoint {
	byDay := map[core.Date]decimal.Decimal{}
	for _, e := range entries {
		if e.Kind != kind {
			continue
		}
		day := core.DateOf(e.Date.Time)
		if sum, ok := byDay[day]; ok {
			byDay[day] = sum.Add(e.Amount)
		} else {
			byDay[day] = e.Amount
		}
	}
	out := make([]DailyPoint, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DailyPoint{Date: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// CategoryAmount is the expense total of one category.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryBreakdown totals expenses per category. Known categories come first
// in their display order, then any others alphabetically. Empty categories are
// left out.
func CategoryBreakdown(entries []core.Entry) []CategoryAmount {
	sums := map[string]decimal.Decimal{}
	for _, e := range entries {
		if e.Kind != core.Expense {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	var out []CategoryAmount
	for _, name := range core.ExpenseCategories() {
		if amt, ok := sums[name]; ok {
			out = append(out, CategoryAmount{Name: name, Amount: amt})
			delete(sums, name)
		}
	}
	rest := make([]string, 0, len(sums))
	for name := range sums {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, CategoryAmount{Name: name, Amount: sums[name]})
	}
	return out
}

// SortedByDateDesc returns a copy with the newest dates first. Entries on the
// same date keep their recorded order.
func SortedByDateDesc(entries []core.Entry) []core.Entry {
	out := append([]core.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	return out
}
