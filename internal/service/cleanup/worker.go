package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/connectn/internal/service/game"
	"github.com/rs/zerolog/log"
)

// RunPruner deletes stored benchmark runs older than a retention age.
type RunPruner interface {
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type Worker struct {
	SessionManager *game.SessionManager
	Runs           RunPruner // optional
	IdleTimeout    time.Duration
	Retention      time.Duration
	Interval       time.Duration
}

func NewWorker(sm *game.SessionManager, runs RunPruner, idle, retention, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Worker{SessionManager: sm, Runs: runs, IdleTimeout: idle, Retention: retention, Interval: interval}
}

// Start runs one sweep immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.RunOnce(ctx)
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
	log.Info().Dur("interval", w.Interval).Msg("cleanup-worker-started")
}

// RunOnce sweeps idle sessions and expired benchmark runs.
func (w *Worker) RunOnce(ctx context.Context) {
	if n := w.SessionManager.CleanupIdleSessions(w.IdleTimeout); n > 0 {
		log.Info().Int("removed", n).Int("active", w.SessionManager.ActiveCount()).Msg("cleanup-idle-sessions")
	}

	if w.Runs == nil || w.Retention <= 0 {
		return
	}
	deleted, err := w.Runs.DeleteOlderThan(ctx, w.Retention)
	if err != nil {
		log.Error().Err(err).Msg("cleanup-benchmark-runs-failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("cleanup-benchmark-runs")
	}
}
