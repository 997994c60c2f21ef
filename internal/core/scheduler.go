package core

// scheduler.go runs background maintenance for the session store.
//
// Datasets live in memory only, so sessions that stop making requests are
// evicted once they have been idle for the configured TTL. The sweeper is
// long-running and stops when its context is cancelled.

import (
	"context"
	"log/slog"
	"time"
)

// SweepConfig holds configuration for the session sweeper.
type SweepConfig struct {
	TTL      time.Duration // Idle time before a session is evicted (default: 2h)
	Interval time.Duration // How often to sweep (default: 5m)
}

func (c SweepConfig) withDefaults() SweepConfig {
	if c.TTL <= 0 {
		c.TTL = 2 * time.Hour
	}
	if c.Interval <= 0 {
		c.Interval = 5 * time.Minute
	}
	return c
}

// StartSessionSweeper evicts idle sessions every Interval until ctx is
// cancelled. Run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, cfg SweepConfig) {
	cfg = cfg.withDefaults()
	slog.Info("session sweeper started",
		"ttl", cfg.TTL.String(),
		"interval", cfg.Interval.String(),
	)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweepSessions(cfg.TTL)
		}
	}
}

// sweepSessions performs one eviction pass.
func (s *Service) sweepSessions(ttl time.Duration) {
	start := time.Now()
	removed := s.sessions.Evict(ttl)
	if removed == 0 {
		slog.Debug("session sweep completed", "remaining", s.sessions.Len())
		return
	}
	slog.Info("evicted idle sessions",
		"sessions_evicted", removed,
		"remaining", s.sessions.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
