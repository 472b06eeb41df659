package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"healthyledger/internal/aggregate"
	"healthyledger/internal/core"
	applog "healthyledger/internal/log"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.render(w, r, http.StatusOK, "history", s.historyView(sess, s.labelsFor(sess)))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.render(w, r, http.StatusOK, "dashboard", s.dashboardView(sess, s.labelsFor(sess)))
}

type goalsJSON struct {
	TargetCalories int `json:"target_calories"`
	TargetExpense  int `json:"target_expense"`
}

type periodJSON struct {
	Calories int             `json:"calories"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Entries  int             `json:"entries"`
}

type progressJSON struct {
	Ratio    float64 `json:"ratio"`
	Exceeded bool    `json:"exceeded"`
}

type pointJSON struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type categoryJSON struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type dashboardJSON struct {
	User         string          `json:"user"`
	Today        string          `json:"today"`
	Month        string          `json:"month"`
	Goals        goalsJSON       `json:"goals"`
	Entries      int             `json:"entries"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	TodayTotals  periodJSON      `json:"today_totals"`
	MonthTotals  periodJSON      `json:"month_totals"`
	CalorieGoal  progressJSON    `json:"calorie_goal"`
	ExpenseGoal  progressJSON    `json:"expense_goal"`
	DailyExpense []pointJSON     `json:"daily_expense"`
	DailyIncome  []pointJSON     `json:"daily_income"`
	Categories   []categoryJSON  `json:"categories"`
}

func toPeriodJSON(p aggregate.PeriodTotals) periodJSON {
	return periodJSON{Calories: p.Calories, Income: p.Income, Expense: p.Expense, Entries: p.Entries}
}

func toPointsJSON(points []aggregate.DailyPoint) []pointJSON {
	out := make([]pointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, pointJSON{Date: p.Date.String(), Total: p.Total})
	}
	return out
}

// handleDashboardJSON returns the dashboard of the session's user. ?today=
// overrides the reference date.
func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if !sess.HasUser() {
		writeJSONError(w, http.StatusBadRequest, "no user selected")
		return
	}
	today := s.today()
	if v := strings.TrimSpace(r.URL.Query().Get("today")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid today parameter")
			return
		}
		today = d
	}

	d, err := aggregate.Summarize(sess.Ledger, today, sess.Goals)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard summary failed",
			applog.NewFields().WithUser(sess.User).WithError(err).WithOperation(applog.OpSummary).ToSlice()...)
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrInvalidPrecondition) {
			status = http.StatusUnprocessableEntity
		}
		writeJSONError(w, status, "summary unavailable")
		return
	}

	cats := make([]categoryJSON, 0, len(d.Categories))
	for _, c := range d.Categories {
		cats = append(cats, categoryJSON{Name: c.Name, Amount: c.Amount})
	}
	writeJSON(w, http.StatusOK, dashboardJSON{
		User:         sess.User,
		Today:        d.Today.String(),
		Month:        d.Month.String(),
		Goals:        goalsJSON{TargetCalories: d.Goals.TargetCalories, TargetExpense: d.Goals.TargetExpense},
		Entries:      d.Entries,
		TotalIncome:  d.AllIncome,
		TotalExpense: d.AllSpent,
		NetBalance:   d.Net(),
		TodayTotals:  toPeriodJSON(d.TodayTotals),
		MonthTotals:  toPeriodJSON(d.MonthTotals),
		CalorieGoal:  progressJSON{Ratio: d.CalorieGoal.Ratio, Exceeded: d.CalorieGoal.Exceeded},
		ExpenseGoal:  progressJSON{Ratio: d.ExpenseGoal.Ratio, Exceeded: d.ExpenseGoal.Exceeded},
		DailyExpense: toPointsJSON(d.DailyExpense),
		DailyIncome:  toPointsJSON(d.DailyIncome),
		Categories:   cats,
	})
}
