package state

import (
	"context"
	"log/slog"
	"time"
)

// Reaper ends sessions that have been idle longer than the TTL.
type Reaper struct {
	store    Store
	ttl      time.Duration
	interval time.Duration
	onExpire func(ctx context.Context, s *Session)
	now      func() time.Time
}

// NewReaper returns a reaper that checks every interval. onExpire, if set,
// runs before a session is deleted and is used to release resources the
// session owns.
func NewReaper(store Store, ttl, interval time.Duration, onExpire func(ctx context.Context, s *Session)) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		onExpire: onExpire,
		now:      time.Now,
	}
}

// Run sweeps until ctx is done.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := r.Sweep(ctx)
			if err != nil {
				slog.Error("Session reaper sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Expired idle sessions", "count", n, "session_ttl", r.ttl)
			}
		}
	}
}

// Sweep ends every idle session once and reports how many were removed.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	idle, err := r.store.ListIdle(ctx, r.now().Add(-r.ttl))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, s := range idle {
		if r.onExpire != nil {
			r.onExpire(ctx, s)
		}
		if err := r.store.Delete(ctx, s.ID); err != nil {
			slog.Warn("Failed to delete idle session", "session_id", s.ID, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
