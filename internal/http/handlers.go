package http

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"healthyledger/internal/core"
	applog "healthyledger/internal/log"
	"healthyledger/internal/session"
)

func (s *Server) users(r *http.Request) []string {
	users, err := s.ledger.Users(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list users", "error", err)
		return nil
	}
	return users
}

// renderPage renders the full page with an error notice. The session is not
// modified.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, sess session.Session, errMsg string) {
	data := s.page(sess, s.users(r))
	data.Error = errMsg
	s.render(w, r, status, "index.html", data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	flash := sess.TakeFlash()
	if flash != "" {
		s.sessions.Put(sess)
	}
	data := s.page(sess, s.users(r))
	if flash != "" {
		data.Flash = data.L.T(flash)
	}
	s.render(w, r, http.StatusOK, "index.html", data)
}

// handleSelectUser switches the session to an existing user or creates a new
// one. A new user gets an empty stored ledger right away so it shows up in
// the selector.
func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	l := s.labelsFor(sess)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, sess, l.T("bad_request"))
		return
	}

	name := sanitizeInput(r.Form.Get("new_user"))
	creating := name != ""
	if !creating {
		name = sanitizeInput(r.Form.Get("user"))
	}
	id, err := core.NormalizeUserID(name)
	if err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_user"))
		return
	}

	ctx := r.Context()
	ledger, err := s.ledger.Load(ctx, id)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to load ledger", applog.FieldUser, id, "error", err)
		msg := l.T("load_failed")
		if errors.Is(err, core.ErrMalformedEntry) {
			msg = l.T("summary_unavailable")
		}
		s.renderPage(w, r, http.StatusInternalServerError, sess, msg)
		return
	}
	if creating && !slices.Contains(s.users(r), id) {
		if err := s.ledger.Save(ctx, id, core.Ledger{}); err != nil {
			applog.FromContext(ctx).ErrorContext(ctx, "Failed to create user", applog.FieldUser, id, "error", err)
			s.renderPage(w, r, http.StatusInternalServerError, sess, l.T("save_failed"))
			return
		}
	}

	sess.User = id
	sess.Ledger = ledger
	s.sessions.Put(sess)
	redirectHome(w, r)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	l := s.labelsFor(sess)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, sess, l.T("bad_request"))
		return
	}
	cal, err1 := strconv.Atoi(sanitizeInput(r.Form.Get("target_calories")))
	exp, err2 := strconv.Atoi(sanitizeInput(r.Form.Get("target_expense")))
	goals := core.GoalSettings{TargetCalories: cal, TargetExpense: exp}
	if err := errors.Join(err1, err2, goals.Validate()); err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_goals"))
		return
	}
	sess.Goals = goals
	sess.Flash = "goals_saved"
	s.sessions.Put(sess)
	redirectHome(w, r)
}

// handleCreateEntry validates the form, appends the entry and saves the whole
// ledger before answering. On a store failure the session keeps its previous
// ledger.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	l := s.labelsFor(sess)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, sess, l.T("bad_request"))
		return
	}
	if !sess.HasUser() {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("choose_user_first"))
		return
	}

	date := s.today()
	if v := sanitizeInput(r.Form.Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_date"))
			return
		}
		date = d
	}
	kind, err := core.ParseKind(sanitizeInput(r.Form.Get("kind")))
	if err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_entry"))
		return
	}
	amount, err := core.ParseAmount(sanitizeInput(r.Form.Get("amount")))
	if err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_amount"))
		return
	}
	menu := sanitizeInput(r.Form.Get("menu"))
	if menu != "" && menu != core.NoMenuItem && !core.IsMenuItem(menu) {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_menu"))
		return
	}
	entry, err := core.NewEntry(date, kind, r.Form.Get("category"), sanitizeInput(r.Form.Get("description")), amount, menu)
	if err != nil {
		s.renderPage(w, r, http.StatusUnprocessableEntity, sess, l.T("invalid_entry")+": "+err.Error())
		return
	}

	next, err := s.ledger.Record(r.Context(), sess.User, sess.Ledger, entry)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to save entry",
			applog.NewFields().WithUser(sess.User).WithError(err).WithOperation(applog.OpRecord).ToSlice()...)
		s.renderPage(w, r, http.StatusInternalServerError, sess, l.T("save_failed"))
		return
	}

	sess.Ledger = next
	sess.Flash = "entry_saved"
	s.sessions.Put(sess)
	redirectHome(w, r)
}
