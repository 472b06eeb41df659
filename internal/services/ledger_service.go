package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"healthyledger/internal/cache"
	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
	applog "healthyledger/internal/log"
)

// Publisher announces saved ledgers to other processes.
type Publisher interface {
	PublishLedgerSaved(ctx context.Context, user string, entries int) error
}

const (
	usersCacheKey    = "users"
	listUsersTimeout = 10 * time.Second
)

// LedgerService orchestrates loading and recording entries across the
// configured store and the optional event publisher.
type LedgerService struct {
	store     ledgerstore.Backend
	publisher Publisher
	users     *cache.LRUCache[[]string]
	listGroup singleflight.Group
}

// NewLedgerService wires a store and an optional publisher. A nil publisher
// disables events.
func NewLedgerService(store ledgerstore.Backend, publisher Publisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		users:     cache.NewLRUCache[[]string](1, 30*time.Second),
	}
}

// UsersCache exposes the user listing cache so it can be swept.
func (s *LedgerService) UsersCache() cache.Cleaner {
	return s.users
}

// Load returns the stored ledger for user, validated.
func (s *LedgerService) Load(ctx context.Context, user string) (core.Ledger, error) {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return nil, err
	}
	l, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load ledger for %s: %w", id, err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("load ledger for %s: %w", id, err)
	}
	return l, nil
}

// Record appends e to current and saves the result as the user's snapshot.
// On any error current is left untouched and nothing was saved; the caller
// keeps using current. The publish after a successful save never fails the call.
func (s *LedgerService) Record(ctx context.Context, user string, current core.Ledger, e core.Entry) (core.Ledger, error) {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	next := current.Append(e)
	if err := s.store.Save(ctx, id, next); err != nil {
		return nil, fmt.Errorf("save ledger for %s: %w", id, err)
	}
	if len(current) == 0 {
		s.users.Delete(usersCacheKey)
	}

	applog.FromContext(ctx).WithComponent(applog.ComponentLedger).InfoContext(ctx, "Entry recorded",
		applog.NewFields().
			WithUser(id).
			WithEntry(e.Date.String(), e.Kind.String(), e.Amount.String(), e.Category, e.MenuItem, e.Calories).
			WithOperation(applog.OpRecord).
			ToSlice()...)

	s.publish(ctx, id, len(next))
	return next, nil
}

// Save stores l as the user's snapshot without appending, used when a new
// user is created with an empty ledger.
func (s *LedgerService) Save(ctx context.Context, user string, l core.Ledger) error {
	id, err := core.NormalizeUserID(user)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, id, l); err != nil {
		return fmt.Errorf("save ledger for %s: %w", id, err)
	}
	s.users.Delete(usersCacheKey)
	s.publish(ctx, id, len(l))
	return nil
}

func (s *LedgerService) publish(ctx context.Context, user string, entries int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerSaved(ctx, user, entries); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger saved message", "user", user, "error", err)
	}
}

// Users lists known users, cached for a short time. Concurrent misses share
// one store call.
func (s *LedgerService) Users(ctx context.Context) ([]string, error) {
	if users, ok := s.users.Get(usersCacheKey); ok {
		return append([]string(nil), users...), nil
	}
	ch := s.listGroup.DoChan(usersCacheKey, func() (interface{}, error) {
		// Shared by every waiter, so it must outlive the first caller.
		listCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listUsersTimeout)
		defer cancel()
		users, err := s.store.ListUsers(listCtx)
		if err != nil {
			return nil, err
		}
		s.users.Set(usersCacheKey, users)
		return users, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("list users: %w", res.Err)
		}
		return append([]string(nil), res.Val.([]string)...), nil
	}
}

// Ping checks the store when it supports health checks.
func (s *LedgerService) Ping(ctx context.Context) error {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the store and publisher if they hold resources.
func (s *LedgerService) Close() error {
	var errs []error
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
