package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"healthyledger/internal/amqp"
	"healthyledger/internal/ledgerstore"
)

// MirrorWorker copies ledgers from the primary store into a mirror store,
// either one user at a time as save events arrive or all users at once.
type MirrorWorker struct {
	primary     ledgerstore.Backend
	mirror      ledgerstore.Store
	concurrency int
}

// ResyncResult summarizes one full pass.
type ResyncResult struct {
	Users    int
	Mirrored int
	Failed   int
	Duration time.Duration
}

func NewMirrorWorker(primary ledgerstore.Backend, mirror ledgerstore.Store, concurrency int) *MirrorWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &MirrorWorker{primary: primary, mirror: mirror, concurrency: concurrency}
}

// HandleLedgerSaved mirrors the user named in msg. A returned error makes the
// consumer requeue the message.
func (w *MirrorWorker) HandleLedgerSaved(ctx context.Context, msg *amqp.LedgerSavedMessage) error {
	slog.InfoContext(ctx, "Processing ledger saved message", "message_id", msg.ID, "user", msg.UserID, "entries", msg.Entries)
	return w.MirrorUser(ctx, msg.UserID)
}

// MirrorUser overwrites the mirror copy of user with the primary snapshot.
func (w *MirrorWorker) MirrorUser(ctx context.Context, user string) error {
	l, err := w.primary.Load(ctx, user)
	if err != nil {
		return fmt.Errorf("load %s from primary: %w", user, err)
	}
	if err := w.mirror.Save(ctx, user, l); err != nil {
		return fmt.Errorf("save %s to mirror: %w", user, err)
	}
	slog.DebugContext(ctx, "Mirrored ledger", "user", user, "entries", len(l))
	return nil
}

// ResyncAll mirrors every user of the primary store with bounded concurrency.
// Per-user failures are counted and logged; only a failed user listing or a
// cancelled context returns an error.
func (w *MirrorWorker) ResyncAll(ctx context.Context) (ResyncResult, error) {
	start := time.Now()
	users, err := w.primary.ListUsers(ctx)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("list users: %w", err)
	}

	var mirrored, failed int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, user := range users {
		user := user
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := w.MirrorUser(gctx, user); err != nil {
				atomic.AddInt64(&failed, 1)
				slog.ErrorContext(gctx, "Failed to mirror user", "user", user, "error", err)
				return nil
			}
			atomic.AddInt64(&mirrored, 1)
			return nil
		})
	}
	err = g.Wait()

	res := ResyncResult{
		Users:    len(users),
		Mirrored: int(mirrored),
		Failed:   int(failed),
		Duration: time.Since(start),
	}
	if err != nil {
		return res, err
	}
	slog.InfoContext(ctx, "Resync complete", "users", res.Users, "mirrored", res.Mirrored, "failed", res.Failed, "duration", res.Duration)
	return res, nil
}

// RunPeriodic calls ResyncAll every interval until ctx is done.
func (w *MirrorWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.ResyncAll(ctx); err != nil && ctx.Err() == nil {
				slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
			}
		}
	}
}
