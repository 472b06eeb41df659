package http

import (
	"net/http"
	"strings"

	"healthyledger/internal/labels"
	"healthyledger/internal/session"
)

// session returns the caller's session, creating one and setting the cookie
// when none is live. A ?lang= parameter switches the stored language; a new
// session starts in the best match for Accept-Language.
func (s *Server) session(w http.ResponseWriter, r *http.Request) session.Session {
	id := ""
	if c, err := r.Cookie(session.CookieName); err == nil {
		id = c.Value
	}
	sess, created := s.sessions.GetOrCreate(id)
	changed := false
	if created {
		sess.Locale = labels.Match("", r.Header.Get("Accept-Language"), s.locale)
		changed = true
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		if picked := labels.Match(lang, "", sess.Locale); picked != sess.Locale {
			sess.Locale = picked
			changed = true
		}
	}
	if changed {
		s.sessions.Put(sess)
	}
	return sess
}

func (s *Server) labelsFor(sess session.Session) *labels.Labels {
	return labels.For(sess.Locale, s.currency)
}
