package http

import (
	"github.com/shopspring/decimal"

	"healthyledger/internal/aggregate"
	"healthyledger/internal/core"
	"healthyledger/internal/labels"
	"healthyledger/internal/session"
)

type pageData struct {
	L         *labels.Labels
	Languages []string
	Users     []string
	User      string
	Goals     core.GoalSettings
	Flash     string
	Error     string
	Today     string

	Kinds      []core.Kind
	Categories []string
	Menu       []menuOption

	History   historyData
	Dashboard dashboardData
}

type menuOption struct {
	Name     string
	Calories int
}

type historyData struct {
	L        *labels.Labels
	HasUser  bool
	Rows     []core.Entry
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Net      decimal.Decimal
	Calories int
}

type dashboardData struct {
	L           *labels.Labels
	HasUser     bool
	Empty       bool
	Unavailable bool
	D           aggregate.Dashboard
	CaloriePct  int
	ExpensePct  int
	Expenses    []bar
	Income      []bar
	Categories  []bar
}

// bar is one row of a horizontal bar list, Pct relative to the largest row.
type bar struct {
	Label string
	Value decimal.Decimal
	Pct   int
}

func menuOptions() []menuOption {
	items := core.MenuItems()
	out := make([]menuOption, 0, len(items)+1)
	out = append(out, menuOption{Name: core.NoMenuItem})
	for _, m := range items {
		out = append(out, menuOption{Name: m, Calories: core.CalorieFor(m)})
	}
	return out
}

func (s *Server) historyView(sess session.Session, l *labels.Labels) historyData {
	income := aggregate.TotalByKind(sess.Ledger, core.Income)
	expense := aggregate.TotalByKind(sess.Ledger, core.Expense)
	return historyData{
		L:        l,
		HasUser:  sess.HasUser(),
		Rows:     aggregate.SortedByDateDesc(sess.Ledger),
		Income:   income,
		Expense:  expense,
		Net:      income.Sub(expense),
		Calories: aggregate.SumCalories(sess.Ledger),
	}
}

func (s *Server) dashboardView(sess session.Session, l *labels.Labels) dashboardData {
	v := dashboardData{L: l, HasUser: sess.HasUser(), Empty: len(sess.Ledger) == 0}
	if !v.HasUser || v.Empty {
		return v
	}
	d, err := aggregate.Summarize(sess.Ledger, s.today(), sess.Goals)
	if err != nil {
		s.logger.Error("Dashboard summary failed", "user", sess.User, "error", err)
		v.Unavailable = true
		return v
	}
	v.D = d
	v.CaloriePct = pct(d.CalorieGoal.Ratio)
	v.ExpensePct = pct(d.ExpenseGoal.Ratio)
	v.Expenses = dailyBars(d.DailyExpense)
	v.Income = dailyBars(d.DailyIncome)
	cats := make([]bar, 0, len(d.Categories))
	for _, c := range d.Categories {
		cats = append(cats, bar{Label: c.Name, Value: c.Amount})
	}
	v.Categories = scaleBars(cats)
	return v
}

func (s *Server) page(sess session.Session, users []string) pageData {
	l := s.labelsFor(sess)
	return pageData{
		L:          l,
		Languages:  labels.Supported,
		Users:      users,
		User:       sess.User,
		Goals:      sess.Goals,
		Today:      s.today().String(),
		Kinds:      []core.Kind{core.Expense, core.Income},
		Categories: core.ExpenseCategories(),
		Menu:       menuOptions(),
		History:    s.historyView(sess, l),
		Dashboard:  s.dashboardView(sess, l),
	}
}

func dailyBars(points []aggregate.DailyPoint) []bar {
	bars := make([]bar, 0, len(points))
	for _, p := range points {
		bars = append(bars, bar{Label: p.Date.String(), Value: p.Total})
	}
	return scaleBars(bars)
}

func scaleBars(bars []bar) []bar {
	max := decimal.Zero
	for _, b := range bars {
		if b.Value.GreaterThan(max) {
			max = b.Value
		}
	}
	if !max.IsPositive() {
		return bars
	}
	for i := range bars {
		r, _ := bars[i].Value.Div(max).Float64()
		bars[i].Pct = pct(r)
	}
	return bars
}

func pct(ratio float64) int {
	p := int(ratio*100 + 0.5)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
