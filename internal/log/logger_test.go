package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentLedger, Output: &buf})
	l.Info("saved", FieldUser, "alice")
	l.WithComponent(ComponentAMQP).Debug("published")

	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "user=alice") {
		t.Fatalf("missing fields: %s", out)
	}
	if !strings.Contains(out, "component=amqp") {
		t.Fatalf("component override missing: %s", out)
	}
}

func TestFieldsBuilder(t *testing.T) {
	f := NewFields().WithUser("bob").WithError(nil).WithOperation(OpSave)
	if _, ok := f[FieldError]; ok {
		t.Fatalf("nil error must not be recorded")
	}
	f.WithError(errors.New("boom"))
	if f[FieldError] != "boom" || f[FieldUser] != "bob" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length mismatch")
	}
}

func TestMiddlewareCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})
	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).Info("inside")
			LogHTTPEnd(r.Context(), r, http.StatusTeapot, 3, "127.0.0.1")
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	out := buf.String()
	if !strings.Contains(out, "request_id=req-1") {
		t.Fatalf("request id missing: %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status_code=418") {
		t.Fatalf("4xx should log at warn: %s", out)
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}
