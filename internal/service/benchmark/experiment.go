package benchmark

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iamasit07/connectn/internal/service/bot"
)

// Experiment names a fixed set of trials.
type Experiment string

const (
	ExperimentBoardSizes   Experiment = "board-sizes"
	ExperimentWinLength    Experiment = "win-length"
	ExperimentPruning      Experiment = "pruning"
	ExperimentDepthScaling Experiment = "depth-scaling"
)

var ErrUnknownExperiment = errors.New("unknown experiment")

// Experiments lists every known experiment name, sorted.
func Experiments() []Experiment {
	out := []Experiment{ExperimentBoardSizes, ExperimentWinLength, ExperimentPruning, ExperimentDepthScaling}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseExperiment(s string) (Experiment, error) {
	for _, e := range Experiments() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExperiment, s)
}

// Trial is one game: a searching X agent against a seeded random O.
type Trial struct {
	Experiment Experiment
	Rows       int
	Columns    int
	WinLength  int
	Strategy   bot.Strategy
	Depth      int
	Seed       int64
}

// PlanOptions tunes how many games an experiment plays and how deep each
// strategy searches.
type PlanOptions struct {
	Runs           int
	MinimaxDepth   int
	AlphaBetaDepth int
	MaxDepth       int // upper bound for depth-scaling
}

func (o PlanOptions) withDefaults() PlanOptions {
	if o.Runs < 1 {
		o.Runs = 10
	}
	if o.MinimaxDepth < 1 {
		o.MinimaxDepth = 7
	}
	if o.AlphaBetaDepth < 1 {
		o.AlphaBetaDepth = 5
	}
	if o.MaxDepth < 3 {
		o.MaxDepth = 7
	}
	return o
}

type boardShape struct{ rows, columns, win int }

var boardSizes = []boardShape{{4, 4, 3}, {4, 5, 3}, {5, 6, 4}, {6, 7, 4}}

const pruningSeedOffset = 1000

// Plan expands an experiment into its trials. Seeds are the run index, so
// paired trials of the same run face the same random opponent.
func Plan(e Experiment, opts PlanOptions) ([]Trial, error) {
	opts = opts.withDefaults()
	var trials []Trial
	add := func(s boardShape, strategy bot.Strategy, depth int, seed int64) {
		trials = append(trials, Trial{
			Experiment: e,
			Rows:       s.rows,
			Columns:    s.columns,
			WinLength:  s.win,
			Strategy:   strategy,
			Depth:      depth,
			Seed:       seed,
		})
	}

	switch e {
	case ExperimentBoardSizes:
		for _, s := range boardSizes {
			for run := 0; run < opts.Runs; run++ {
				add(s, bot.StrategyMinimax, opts.MinimaxDepth, int64(run))
				add(s, bot.StrategyAlphaBeta, opts.AlphaBetaDepth, int64(run))
			}
		}
	case ExperimentWinLength:
		for _, win := range []int{3, 4, 5} {
			for run := 0; run < opts.Runs; run++ {
				add(boardShape{5, 6, win}, bot.StrategyAlphaBeta, opts.AlphaBetaDepth, int64(run))
			}
		}
	case ExperimentPruning:
		// Both strategies search to the same depth so node counts compare.
		for run := 0; run < opts.Runs; run++ {
			seed := int64(run + pruningSeedOffset)
			add(boardShape{5, 6, 4}, bot.StrategyMinimax, opts.AlphaBetaDepth, seed)
			add(boardShape{5, 6, 4}, bot.StrategyAlphaBeta, opts.AlphaBetaDepth, seed)
		}
	case ExperimentDepthScaling:
		for depth := 3; depth <= opts.MaxDepth; depth++ {
			for run := 0; run < opts.Runs; run++ {
				add(boardShape{4, 5, 3}, bot.StrategyAlphaBeta, depth, int64(run))
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExperiment, e)
	}
	return trials, nil
}
