// Package trace assigns request ids and writes one access log line per
// request.
package trace

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	applog "healthyledger/internal/log"
)

// HeaderRequestID carries the request id in both directions. An incoming
// value is kept so ids survive a proxy hop.
const HeaderRequestID = "X-Request-ID"

// Middleware tags the request logger with an id and logs completion.
func Middleware(clientIP func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		tagged := applog.RequestIDMiddleware(func(r *http.Request) string {
			return r.Header.Get(HeaderRequestID)
		})
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			tagged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r)
				ip := ""
				if clientIP != nil {
					ip = clientIP(r)
				}
				applog.LogHTTPEnd(r.Context(), r, rec.status, time.Since(start).Milliseconds(), ip)
			})).ServeHTTP(rec, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}
