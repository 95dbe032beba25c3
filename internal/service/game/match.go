package game

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/connectn/internal/domain"
	"github.com/rs/zerolog/log"
)

// Player chooses a column for its piece on the current board. The board
// must be left as it was found.
type Player interface {
	Piece() domain.PlayerID
	ChooseMove(ctx context.Context, board *domain.Board) (int, error)
}

// PlayedMove is one turn of a finished match.
type PlayedMove struct {
	Column   int
	Row      int
	Piece    domain.PlayerID
	Duration time.Duration
}

// Outcome is the result of Play.
type Outcome struct {
	Winner   domain.PlayerID // Empty on a draw
	Moves    []PlayedMove
	First    domain.PlayerID
	Duration time.Duration
}

// Result scores the outcome for the first player: 1 win, -1 loss, 0 draw.
func (o Outcome) Result() int {
	switch o.Winner {
	case domain.Empty:
		return 0
	case o.First:
		return 1
	default:
		return -1
	}
}

// ThinkTime sums the time piece spent choosing moves.
func (o Outcome) ThinkTime(piece domain.PlayerID) time.Duration {
	var total time.Duration
	for _, m := range o.Moves {
		if m.Piece == piece {
			total += m.Duration
		}
	}
	return total
}

// Play alternates first and second on board until one of them completes a
// line or the board fills. The context is checked between moves; a move in
// progress is not interrupted.
func Play(ctx context.Context, board *domain.Board, first, second Player) (Outcome, error) {
	if first.Piece() == second.Piece() || !first.Piece().Valid() || !second.Piece().Valid() {
		return Outcome{}, fmt.Errorf("%w: players must hold different pieces", domain.ErrInvalidPiece)
	}

	out := Outcome{First: first.Piece()}
	start := time.Now()
	players := [2]Player{first, second}
	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		p := players[turn%2]

		moveStart := time.Now()
		col, err := p.ChooseMove(ctx, board)
		if err != nil {
			return out, fmt.Errorf("player %s on turn %d: %w", p.Piece(), turn+1, err)
		}
		elapsed := time.Since(moveStart)

		row, err := board.ApplyMove(col, p.Piece())
		if err != nil {
			return out, fmt.Errorf("player %s on turn %d chose column %d: %w", p.Piece(), turn+1, col, err)
		}
		out.Moves = append(out.Moves, PlayedMove{Column: col, Row: row, Piece: p.Piece(), Duration: elapsed})

		if board.IsWin() {
			out.Winner = p.Piece()
			break
		}
		if board.IsFull() {
			break
		}
	}
	out.Duration = time.Since(start)

	log.Debug().
		Str("winner", out.Winner.String()).
		Int("moves", len(out.Moves)).
		Dur("elapsed", out.Duration).
		Msg("match-finished")
	return out, nil
}
