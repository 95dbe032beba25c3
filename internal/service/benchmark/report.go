package benchmark

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iamasit07/connectn/internal/service/bot"
)

// Row is the record of one benchmark game, from the searching agent's side.
type Row struct {
	Experiment    Experiment   `json:"experiment" parquet:"experiment,dict"`
	Board         string       `json:"board" parquet:"board,dict"`
	WinLength     int32        `json:"winLength" parquet:"win_length"`
	Algorithm     bot.Strategy `json:"algorithm" parquet:"algorithm,dict"`
	Depth         int32        `json:"depth" parquet:"depth"`
	Seed          int64        `json:"seed" parquet:"seed"`
	NodesExpanded int64        `json:"nodesExpanded" parquet:"nodes_expanded"`
	NodesPruned   int64        `json:"nodesPruned" parquet:"nodes_pruned"`
	Moves         int32        `json:"moves" parquet:"moves"`
	ElapsedMs     float64      `json:"elapsedMs" parquet:"elapsed_ms"`
	Result        int32        `json:"result" parquet:"result"`
}

func boardLabel(rows, columns int) string { return fmt.Sprintf("%dx%d", rows, columns) }

// Summary aggregates the rows of one (board, win length, algorithm, depth)
// group.
type Summary struct {
	Board         string       `json:"board"`
	WinLength     int32        `json:"winLength"`
	Algorithm     bot.Strategy `json:"algorithm"`
	Depth         int32        `json:"depth"`
	Games         int          `json:"games"`
	MeanNodes     float64      `json:"meanNodes"`
	StdevNodes    float64      `json:"stdevNodes"`
	MeanPruned    float64      `json:"meanPruned"`
	MeanElapsedMs float64      `json:"meanElapsedMs"`
	Wins          int          `json:"wins"`
	Losses        int          `json:"losses"`
	Draws         int          `json:"draws"`
	WinRate       float64      `json:"winRate"`
}

// Reduction pairs minimax and alpha-beta games played against the same
// opponent seed.
type Reduction struct {
	Seed           int64   `json:"seed"`
	MinimaxNodes   int64   `json:"minimaxNodes"`
	AlphaBetaNodes int64   `json:"alphaBetaNodes"`
	Pruned         int64   `json:"pruned"`
	Percent        float64 `json:"percent"`
}

type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Report is a benchmark run with its raw rows and aggregates.
type Report struct {
	ID         string      `json:"id"`
	Experiment Experiment  `json:"experiment"`
	Status     Status      `json:"status"`
	Error      string      `json:"error,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
	Rows       []Row       `json:"rows,omitempty"`
	Summaries  []Summary   `json:"summaries,omitempty"`
	Reductions []Reduction `json:"reductions,omitempty"`
}

type groupKey struct {
	board     string
	winLength int32
	algorithm bot.Strategy
	depth     int32
}

// Summarize groups rows and returns one Summary per group, in the order the
// groups first appear.
func Summarize(rows []Row) []Summary {
	var order []groupKey
	groups := map[groupKey][]Row{}
	for _, r := range rows {
		k := groupKey{r.Board, r.WinLength, r.Algorithm, r.Depth}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]Summary, 0, len(order))
	for _, k := range order {
		g := groups[k]
		s := Summary{Board: k.board, WinLength: k.winLength, Algorithm: k.algorithm, Depth: k.depth, Games: len(g)}
		nodes := make([]float64, len(g))
		for i, r := range g {
			nodes[i] = float64(r.NodesExpanded)
			s.MeanPruned += float64(r.NodesPruned)
			s.MeanElapsedMs += r.ElapsedMs
			switch r.Result {
			case 1:
				s.Wins++
			case -1:
				s.Losses++
			default:
				s.Draws++
			}
		}
		n := float64(len(g))
		s.MeanNodes, s.StdevNodes = meanStdev(nodes)
		s.MeanPruned /= n
		s.MeanElapsedMs /= n
		s.WinRate = float64(s.Wins) / n
		out = append(out, s)
	}
	return out
}

// meanStdev returns the mean and the sample standard deviation. The
// deviation of fewer than two values is 0.
func meanStdev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sq / float64(len(xs)-1))
}

// Reductions matches minimax and alpha-beta rows on the same board and seed
// and reports how many nodes pruning saved.
func Reductions(rows []Row) []Reduction {
	type pairKey struct {
		board string
		win   int32
		seed  int64
	}
	minimax := map[pairKey]Row{}
	for _, r := range rows {
		if r.Algorithm == bot.StrategyMinimax {
			minimax[pairKey{r.Board, r.WinLength, r.Seed}] = r
		}
	}

	var out []Reduction
	for _, r := range rows {
		if r.Algorithm != bot.StrategyAlphaBeta {
			continue
		}
		mm, ok := minimax[pairKey{r.Board, r.WinLength, r.Seed}]
		if !ok {
			continue
		}
		red := Reduction{Seed: r.Seed, MinimaxNodes: mm.NodesExpanded, AlphaBetaNodes: r.NodesExpanded, Pruned: r.NodesPruned}
		if mm.NodesExpanded > 0 {
			red.Percent = float64(mm.NodesExpanded-r.NodesExpanded) / float64(mm.NodesExpanded) * 100
		}
		out = append(out, red)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}
