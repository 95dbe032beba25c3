package bot

import (
	"context"
	"math/rand"

	"github.com/iamasit07/connectn/internal/domain"
)

// RandomPlayer plays a uniformly random legal column. The same seed replays
// the same choices on the same positions.
type RandomPlayer struct {
	piece domain.PlayerID
	rng   *rand.Rand
}

func NewRandomPlayer(piece domain.PlayerID, seed int64) (*RandomPlayer, error) {
	if !piece.Valid() {
		return nil, domain.ErrInvalidPiece
	}
	return &RandomPlayer{piece: piece, rng: rand.New(rand.NewSource(seed))}, nil
}

func (p *RandomPlayer) Piece() domain.PlayerID { return p.piece }

func (p *RandomPlayer) ChooseMove(ctx context.Context, board *domain.Board) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	validColumns := board.LegalColumns()
	if len(validColumns) == 0 {
		return -1, ErrNoLegalMoves
	}
	return validColumns[p.rng.Intn(len(validColumns))], nil
}
