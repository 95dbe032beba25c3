package domain

import "fmt"

// Game wraps a Board with turn order and a result. X always moves first.
type Game struct {
	Board         *Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
}

func NewGame(rows, columns, winLength int) (*Game, error) {
	board, err := NewBoard(rows, columns, winLength)
	if err != nil {
		return nil, err
	}
	return &Game{
		Board:         board,
		CurrentPlayer: PlayerX,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

// ReplayGame builds a game from a column history, X first.
func ReplayGame(rows, columns, winLength int, columnsPlayed []int) (*Game, error) {
	g, err := NewGame(rows, columns, winLength)
	if err != nil {
		return nil, err
	}
	for i, col := range columnsPlayed {
		if _, err := g.MakeMove(g.CurrentPlayer, col); err != nil {
			return nil, fmt.Errorf("move %d (column %d): %w", i+1, col, err)
		}
	}
	return g, nil
}

// MakeMove drops the current player's piece and advances the turn unless
// the move ended the game.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusActive {
		return -1, ErrGameOver
	}
	if player != g.CurrentPlayer {
		return -1, ErrNotYourTurn
	}

	row, err := g.Board.ApplyMove(column, player)
	if err != nil {
		return -1, err
	}

	if g.Board.IsWin() {
		g.Status = StatusWon
		g.Winner = player
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentPlayer = player.Opponent()
	return row, nil
}

func (g *Game) MoveCount() int { return g.Board.MoveCount() }

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
