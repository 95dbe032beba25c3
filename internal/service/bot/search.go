package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connectn/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// Large is the base of a terminal score. It must stay above any
	// heuristic window score (SCORE_LINE) so a proven result always
	// outranks an estimate.
	Large int64 = 1000000000
	// Infinity bounds the alpha-beta window and seeds the running best.
	// It is far above Large plus any search depth.
	Infinity int64 = 1000000000000000000
)

var (
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrInvalidDepth    = errors.New("search depth must be at least 1")
	ErrUnknownStrategy = errors.New("unknown search strategy")
)

// Strategy selects how the tree walk treats bounds.
type Strategy string

const (
	StrategyMinimax   Strategy = "minimax"
	StrategyAlphaBeta Strategy = "alphabeta"
)

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "minimax":
		return StrategyMinimax, nil
	case "alphabeta", "alpha-beta":
		return StrategyAlphaBeta, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Result is the outcome of one Search call.
type Result struct {
	Column  int
	Value   int64
	Stats   Stats
	Elapsed time.Duration
}

// TerminalScore scores a finished game with remaining plies left in the
// search budget. A win found with more plies remaining was found sooner, so
// it scores higher; a loss with fewer plies remaining came later, so it is
// less negative.
//
// remaining counts down toward the leaves, so the score is Large plus
// remaining rather than Large minus depth searched; subtracting the
// countdown would prefer slower wins.
func TerminalScore(won bool, remaining int) int64 {
	if won {
		return Large + int64(remaining)
	}
	return -(Large + int64(remaining))
}

// Search picks a column for perspective by a depth-limited walk of the game
// tree. The board is mutated during the walk and is back in its input state
// when Search returns. With StrategyAlphaBeta the walk prunes with
// alpha-beta bounds; the chosen column is the same as with StrategyMinimax.
func Search(board *domain.Board, perspective domain.PlayerID, depth int, strategy Strategy) (res Result, err error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if !perspective.Valid() {
		return Result{}, domain.ErrInvalidPiece
	}
	var prune bool
	switch strategy {
	case StrategyMinimax:
	case StrategyAlphaBeta:
		prune = true
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
	if board.IsWin() {
		return Result{}, domain.ErrGameOver
	}
	legal := board.LegalColumns()
	if len(legal) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	w := &walker{
		board: board,
		me:    perspective,
		opp:   perspective.Opponent(),
		prune: prune,
	}
	defer func() {
		if r := recover(); r != nil {
			cv, ok := r.(contractViolation)
			if !ok {
				panic(r)
			}
			err = cv.err
		}
	}()

	start := time.Now()
	moves := OrderMoves(board, legal)
	bestCol, best := -1, -Infinity
	alpha, beta := -Infinity, Infinity
	for _, col := range moves {
		var v int64
		w.play(col, w.me, func() {
			v = w.value(depth-1, false, alpha, beta)
		})
		if v > best {
			best = v
			bestCol = col
		}
		if prune {
			alpha = max(alpha, best)
		}
	}
	if bestCol < 0 {
		bestCol = moves[0]
	}

	res = Result{
		Column:  bestCol,
		Value:   best,
		Stats:   w.stats,
		Elapsed: time.Since(start),
	}
	log.Debug().
		Str("strategy", string(strategy)).
		Int("depth", depth).
		Int("column", res.Column).
		Int64("value", res.Value).
		Int64("nodes", res.Stats.NodesExpanded).
		Int64("pruned", res.Stats.NodesPruned).
		Dur("elapsed", res.Elapsed).
		Msg("search-done")
	return res, nil
}

// contractViolation carries a board error raised inside the walk back to
// Search, which returns it.
type contractViolation struct {
	err error
}

// walker holds the state of one Search: the shared board, both sides, the
// pruning flag and the counters for this search alone.
type walker struct {
	board *domain.Board
	me    domain.PlayerID
	opp   domain.PlayerID
	prune bool
	stats Stats
}

func (w *walker) play(col int, piece domain.PlayerID, fn func()) {
	if err := w.board.WithMove(col, piece, fn); err != nil {
		panic(contractViolation{err: err})
	}
}

// value returns the minimax value of the current board with remaining plies
// to go. maximizing is true when w.me is to move.
func (w *walker) value(remaining int, maximizing bool, alpha, beta int64) int64 {
	w.stats.NodesExpanded++

	// Terminal conditions
	if w.board.IsWin() {
		return TerminalScore(w.board.Winner() == w.me, remaining)
	}
	if w.board.IsFull() {
		return 0
	}
	if remaining == 0 {
		return Evaluate(w.board, w.me, w.opp)
	}

	moves := OrderMoves(w.board, w.board.LegalColumns())
	if len(moves) == 0 {
		return 0
	}

	if maximizing {
		maxEval := -Infinity
		for _, col := range moves {
			var eval int64
			w.play(col, w.me, func() {
				eval = w.value(remaining-1, false, alpha, beta)
			})
			maxEval = max(maxEval, eval)
			if w.prune {
				alpha = max(alpha, maxEval)
				if beta <= alpha {
					w.stats.NodesPruned++
					break // Beta cutoff
				}
			}
		}
		return maxEval
	}

	minEval := Infinity
	for _, col := range moves {
		var eval int64
		w.play(col, w.opp, func() {
			eval = w.value(remaining-1, true, alpha, beta)
		})
		minEval = min(minEval, eval)
		if w.prune {
			beta = min(beta, minEval)
			if beta <= alpha {
				w.stats.NodesPruned++
				break // Alpha cutoff
			}
		}
	}
	return minEval
}
