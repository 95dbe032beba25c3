package bot

import (
	"context"
	"fmt"

	"github.com/iamasit07/connectn/internal/domain"
)

// Player is anything that can pick a column for its piece.
type Player interface {
	Piece() domain.PlayerID
	ChooseMove(ctx context.Context, board *domain.Board) (int, error)
}

// Options configures an Agent's default decision.
type Options struct {
	Strategy Strategy
	Depth    int
}

// Agent is a searching player. Its counters accumulate over every decision
// until ResetStats is called. An Agent is not safe for concurrent use.
type Agent struct {
	piece domain.PlayerID
	opts  Options
	stats Stats
}

func NewAgent(piece domain.PlayerID, opts Options) (*Agent, error) {
	if !piece.Valid() {
		return nil, domain.ErrInvalidPiece
	}
	if _, err := ParseStrategy(string(opts.Strategy)); err != nil {
		return nil, err
	}
	if opts.Depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, opts.Depth)
	}
	return &Agent{piece: piece, opts: opts}, nil
}

func (a *Agent) Piece() domain.PlayerID    { return a.piece }
func (a *Agent) Opponent() domain.PlayerID { return a.piece.Opponent() }
func (a *Agent) Options() Options          { return a.opts }

// Stats returns the counters accumulated so far.
func (a *Agent) Stats() Stats { return a.stats }

func (a *Agent) ResetStats() { a.stats.Reset() }

// ChooseMove decides with the agent's configured strategy and depth.
func (a *Agent) ChooseMove(ctx context.Context, board *domain.Board) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	res, err := a.Decide(board, a.opts.Strategy, a.opts.Depth)
	if err != nil {
		return -1, err
	}
	return res.Column, nil
}

// DecideMinimax searches without pruning.
func (a *Agent) DecideMinimax(board *domain.Board, depth int) (int, error) {
	res, err := a.Decide(board, StrategyMinimax, depth)
	return res.Column, err
}

// DecideAlphaBeta searches with alpha-beta pruning.
func (a *Agent) DecideAlphaBeta(board *domain.Board, depth int) (int, error) {
	res, err := a.Decide(board, StrategyAlphaBeta, depth)
	return res.Column, err
}

// Decide runs one search and adds its counters to the agent's totals.
func (a *Agent) Decide(board *domain.Board, strategy Strategy, depth int) (Result, error) {
	res, err := Search(board, a.piece, depth, strategy)
	if err != nil {
		return Result{Column: -1}, err
	}
	a.stats.Add(res.Stats)
	return res, nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Medium if invalid or empty
func ParseDifficulty(difficulty string) Difficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// NewPlayer builds the bot for a difficulty: easy plays random legal
// columns, medium searches with plain minimax, hard with alpha-beta.
func NewPlayer(piece domain.PlayerID, difficulty Difficulty, depth int, seed int64) (Player, error) {
	if difficulty == DifficultyEasy {
		p, err := NewRandomPlayer(piece, seed)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	strategy := StrategyMinimax
	if difficulty == DifficultyHard {
		strategy = StrategyAlphaBeta
	}
	a, err := NewAgent(piece, Options{Strategy: strategy, Depth: depth})
	if err != nil {
		return nil, err
	}
	return a, nil
}
