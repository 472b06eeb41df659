package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"healthyledger/internal/cache"
	"healthyledger/internal/core"
	applog "healthyledger/internal/log"
	"healthyledger/internal/middleware/ratelimit"
	"healthyledger/internal/middleware/security"
	"healthyledger/internal/middleware/trace"
	"healthyledger/internal/session"
	appweb "healthyledger/web"
)

// Ledger is what the handlers need from the ledger service.
type Ledger interface {
	Load(ctx context.Context, user string) (core.Ledger, error)
	Record(ctx context.Context, user string, current core.Ledger, e core.Entry) (core.Ledger, error)
	Save(ctx context.Context, user string, l core.Ledger) error
	Users(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Options configures NewServer. Zero values get defaults.
type Options struct {
	Addr          string
	Ledger        Ledger
	Sessions      *session.Manager
	Logger        *applog.Logger
	DefaultLocale string
	Currency      string
	RateLimit     ratelimit.Config
	// Caches lists extra caches to sweep alongside sessions and the limiter.
	Caches []cache.Cleaner
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    Ledger
	sessions  *session.Manager
	logger    *applog.Logger
	limiter   *ratelimit.Limiter
	caches    *cache.Manager
	locale    string
	currency  string
	now       func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = "en"
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewManager(12*time.Hour, 10000, opts.DefaultLocale)
	}
	if opts.Currency == "" {
		opts.Currency = "THB"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	clientIP, err := security.NewClientIP()
	if err != nil {
		return nil, err
	}

	s := &Server{
		templates: t,
		ledger:    opts.Ledger,
		sessions:  opts.Sessions,
		logger:    opts.Logger.WithComponent(applog.ComponentHTTP),
		limiter:   ratelimit.New(opts.RateLimit),
		caches:    cache.NewManager(),
		locale:    opts.DefaultLocale,
		currency:  opts.Currency,
		now:       opts.Now,
	}
	s.caches.Register(s.sessions.Cleaner())
	s.caches.Register(s.limiter)
	for _, c := range opts.Caches {
		s.caches.Register(c)
	}
	s.caches.StartCleanup(5 * time.Minute)

	mux := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		mux.Handle("GET /static/", security.StaticCache(3600)(http.StripPrefix("/static/", http.FileServer(http.FS(sub)))))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /users", s.handleSelectUser)
	mux.HandleFunc("POST /goals", s.handleGoals)
	mux.HandleFunc("POST /entries", s.handleCreateEntry)
	mux.HandleFunc("GET /ui/history", s.handleHistory)
	mux.HandleFunc("GET /ui/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboardJSON)
	mux.HandleFunc("GET /export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	var h http.Handler = mux
	h = s.limiter.Middleware(clientIP.Extract)(h)
	h = security.Headers(security.DefaultHeadersConfig())(h)
	h = trace.Middleware(clientIP.Extract)(h)
	h = applog.Middleware(opts.Logger)(h)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops background sweeping and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) today() core.Date {
	return core.DateOf(s.now())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.ledger.Ping(ctx); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
