package http

import (
	"github.com/iamasit07/connectn/internal/domain"
)

// boardRequest describes a position as the columns played from an empty
// board, X first. Zero dimensions fall back to the standard 6x7 connect-4.
type boardRequest struct {
	Rows      int   `json:"rows"`
	Columns   int   `json:"columns"`
	WinLength int   `json:"winLength"`
	Moves     []int `json:"moves"`
}

func (r boardRequest) replay() (*domain.Game, error) {
	rows, cols, win := r.Rows, r.Columns, r.WinLength
	if rows == 0 {
		rows = domain.DefaultRows
	}
	if cols == 0 {
		cols = domain.DefaultColumns
	}
	if win == 0 {
		win = domain.DefaultWinLength
	}
	return domain.ReplayGame(rows, cols, win, r.Moves)
}
