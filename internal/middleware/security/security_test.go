package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHeaders(t *testing.T) {
	h := Headers(DefaultHeadersConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" || rec.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("missing headers: %v", rec.Header())
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must not be sent over plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("expected HSTS over TLS")
	}
}

func TestClientIP(t *testing.T) {
	c, err := NewClientIP()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	cases := []struct {
		remote, xff, xri, want string
	}{
		{"203.0.113.7:1234", "198.51.100.1", "", "203.0.113.7"},
		{"10.0.0.2:1234", "198.51.100.1, 10.0.0.1", "", "198.51.100.1"},
		{"127.0.0.1:80", "", "198.51.100.9", "198.51.100.9"},
		{"127.0.0.1:80", "garbage", "", "127.0.0.1"},
		{"not-an-addr", "", "", "not-an-addr"},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tc.remote
		if tc.xff != "" {
			r.Header.Set("X-Forwarded-For", tc.xff)
		}
		if tc.xri != "" {
			r.Header.Set("X-Real-IP", tc.xri)
		}
		if got := c.Extract(r); got != tc.want {
			t.Fatalf("Extract(%s, %q, %q) = %q, want %q", tc.remote, tc.xff, tc.xri, got, tc.want)
		}
	}
	if _, err := NewClientIP("nope"); err == nil {
		t.Fatalf("expected invalid CIDR error")
	}
}
