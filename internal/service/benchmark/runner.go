package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/internal/service/game"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Runner plays trials on a bounded pool of goroutines. Every game gets its
// own board and players, so trials share nothing.
type Runner struct {
	Workers int
}

func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Runner{Workers: workers}
}

// RunTrials plays every trial and returns the rows in trial order. The
// first failing game cancels the rest.
func (r *Runner) RunTrials(ctx context.Context, trials []Trial) ([]Row, error) {
	rows := make([]Row, len(trials))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for i, t := range trials {
		g.Go(func() error {
			row, err := PlayTrial(ctx, t)
			if err != nil {
				return fmt.Errorf("trial %d (%s %s depth %d seed %d): %w",
					i, boardLabel(t.Rows, t.Columns), t.Strategy, t.Depth, t.Seed, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Run plans and plays an experiment and fills in its aggregates.
func (r *Runner) Run(ctx context.Context, e Experiment, opts PlanOptions) (*Report, error) {
	trials, err := Plan(e, opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log.Info().Str("experiment", string(e)).Int("trials", len(trials)).Int("workers", r.Workers).Msg("benchmark-started")

	rows, err := r.RunTrials(ctx, trials)
	if err != nil {
		return nil, err
	}
	finished := time.Now()
	rep := &Report{
		Experiment: e,
		Status:     StatusDone,
		CreatedAt:  start,
		FinishedAt: &finished,
		Rows:       rows,
		Summaries:  Summarize(rows),
	}
	if e == ExperimentPruning {
		rep.Reductions = Reductions(rows)
	}

	log.Info().Str("experiment", string(e)).Dur("elapsed", finished.Sub(start)).Msg("benchmark-finished")
	return rep, nil
}

// PlayTrial plays one game with the searching agent as X, moving first.
func PlayTrial(ctx context.Context, t Trial) (Row, error) {
	board, err := domain.NewBoard(t.Rows, t.Columns, t.WinLength)
	if err != nil {
		return Row{}, err
	}
	agent, err := bot.NewAgent(domain.PlayerX, bot.Options{Strategy: t.Strategy, Depth: t.Depth})
	if err != nil {
		return Row{}, err
	}
	opponent, err := bot.NewRandomPlayer(domain.PlayerO, t.Seed)
	if err != nil {
		return Row{}, err
	}

	out, err := game.Play(ctx, board, agent, opponent)
	if err != nil {
		return Row{}, err
	}
	stats := agent.Stats()
	return Row{
		Experiment:    t.Experiment,
		Board:         boardLabel(t.Rows, t.Columns),
		WinLength:     int32(t.WinLength),
		Algorithm:     t.Strategy,
		Depth:         int32(t.Depth),
		Seed:          t.Seed,
		NodesExpanded: stats.NodesExpanded,
		NodesPruned:   stats.NodesPruned,
		Moves:         int32(len(out.Moves)),
		ElapsedMs:     float64(out.Duration.Microseconds()) / 1000,
		Result:        int32(out.Result()),
	}, nil
}
