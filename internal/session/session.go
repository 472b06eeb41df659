// Package session holds the per-browser state of the web UI: the selected
// user, that user's ledger snapshot, goals and display language.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"healthyledger/internal/cache"
	"healthyledger/internal/core"
)

// CookieName is the cookie carrying the session id.
const CookieName = "hl_session"

// Session is a value; mutate a copy and Put it back.
type Session struct {
	ID     string
	User   string
	Ledger core.Ledger
	Goals  core.GoalSettings
	Locale string
	// Flash is a one-shot notice shown on the next page render.
	Flash string
}

// TakeFlash returns the notice and clears it on the copy.
func (s *Session) TakeFlash() string {
	f := s.Flash
	s.Flash = ""
	return f
}

// HasUser reports whether a user was selected.
func (s Session) HasUser() bool {
	return s.User != ""
}

// Manager stores sessions in memory with an idle TTL. Every Get restarts the
// TTL. Two concurrent requests of one session race and the last Put wins.
type Manager struct {
	mu       sync.Mutex
	sessions *cache.LRUCache[Session]
	locale   string
}

func NewManager(ttl time.Duration, maxSessions int, defaultLocale string) *Manager {
	return &Manager{
		sessions: cache.NewLRUCache[Session](maxSessions, ttl),
		locale:   defaultLocale,
	}
}

// Create starts an empty session with default goals.
func (m *Manager) Create() Session {
	s := Session{
		ID:     uuid.NewString(),
		Ledger: core.Ledger{},
		Goals:  core.DefaultGoals(),
		Locale: m.locale,
	}
	m.sessions.Set(s.ID, s)
	return s
}

// Get returns the live session for id and extends its lifetime.
func (m *Manager) Get(id string) (Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return Session{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions.Get(id)
	if ok {
		m.sessions.Set(id, s)
	}
	return s, ok
}

// GetOrCreate returns the session for id, or a fresh one when id is unknown
// or expired. created reports the latter.
func (m *Manager) GetOrCreate(id string) (s Session, created bool) {
	if s, ok := m.Get(id); ok {
		return s, false
	}
	return m.Create(), true
}

func (m *Manager) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions.Set(s.ID, s)
}

func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
}

func (m *Manager) Len() int {
	return m.sessions.Size()
}

// Cleaner exposes expiry sweeping to a cache manager.
func (m *Manager) Cleaner() cache.Cleaner {
	return m.sessions
}
