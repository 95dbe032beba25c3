package benchmark

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iamasit07/connectn/pkg/uid"
	"github.com/rs/zerolog/log"
)

// Service starts experiment runs in the background and serves their
// reports from the cache, then the store.
type Service struct {
	runner  *Runner
	store   Store
	cache   Cache
	opts    PlanOptions
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewService wires a runner to a store. cache may be nil.
func NewService(runner *Runner, store Store, cache Cache, opts PlanOptions, timeout time.Duration) *Service {
	return &Service{runner: runner, store: store, cache: cache, opts: opts, timeout: timeout}
}

// StartRun records a running report and plays the experiment in the
// background. runs overrides the configured game count when positive.
func (s *Service) StartRun(ctx context.Context, e Experiment, runs int) (*Report, error) {
	if _, err := ParseExperiment(string(e)); err != nil {
		return nil, err
	}
	rep := &Report{ID: uid.GenerateRunID(), Experiment: e, Status: StatusRunning, CreatedAt: time.Now()}
	if err := s.store.SaveRun(ctx, rep); err != nil {
		return nil, err
	}

	opts := s.opts
	if runs > 0 {
		opts.Runs = runs
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(rep.ID, rep.CreatedAt, e, opts)
	}()
	return rep, nil
}

func (s *Service) execute(id string, created time.Time, e Experiment, opts PlanOptions) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rep, err := s.runner.Run(ctx, e, opts)
	if err != nil {
		log.Error().Err(err).Str("run", id).Msg("benchmark-failed")
		now := time.Now()
		rep = &Report{Experiment: e, Status: StatusFailed, Error: err.Error(), FinishedAt: &now}
	}
	rep.ID = id
	rep.CreatedAt = created

	// The caller's request is gone by now, so persist on a fresh context.
	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.SaveRun(saveCtx, rep); err != nil {
		log.Error().Err(err).Str("run", id).Msg("benchmark-save-failed")
		return
	}
	if s.cache != nil && rep.Status == StatusDone {
		if err := s.cache.SetReport(saveCtx, rep); err != nil {
			log.Warn().Err(err).Str("run", id).Msg("benchmark-cache-failed")
		}
	}
}

// GetRun returns a report, preferring the cache for finished runs.
func (s *Service) GetRun(ctx context.Context, id string) (*Report, error) {
	if !uid.IsRunID(id) {
		return nil, ErrRunNotFound
	}
	if s.cache != nil {
		rep, err := s.cache.GetReport(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("run", id).Msg("benchmark-cache-read-failed")
		} else if rep != nil {
			return rep, nil
		}
	}
	rep, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && rep.Status == StatusDone {
		if err := s.cache.SetReport(ctx, rep); err != nil {
			log.Warn().Err(err).Str("run", id).Msg("benchmark-cache-failed")
		}
	}
	return rep, nil
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	return s.store.ListRuns(ctx, limit)
}

// Wait blocks until every started run has been saved.
func (s *Service) Wait() { s.wg.Wait() }

// IsNotFound reports whether err means the run does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrRunNotFound) }
