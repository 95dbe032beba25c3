package bot

import (
	"github.com/iamasit07/connectn/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_LINE        int64 = 100000000 // window already filled by one side
	SCORE_ONE_AWAY    int64 = 100000    // winLength-1 pieces and one empty cell
	SCORE_TWO_AWAY    int64 = 1000      // winLength-2 pieces and two empty cells
	SCORE_FRESH_LINE  int64 = 5         // a single piece with the rest empty
	SCORE_CENTER_DISK int64 = 3         // per piece in the center column
)

// window directions: row, column, diagonal / and diagonal \
var windowDirections = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// Evaluate scores a position from perspective's point of view: positive
// favors perspective. It sums the center-column bonus and the score of every
// winLength window in the four directions. Scores are only comparable
// between positions of the same board size and win length.
func Evaluate(board *domain.Board, perspective, opponent domain.PlayerID) int64 {
	rows, columns, n := board.Rows(), board.Columns(), board.WinLength()
	var score int64

	// Center column preference
	center := board.CenterColumn()
	for row := 0; row < rows; row++ {
		switch board.CellAt(row, center) {
		case perspective:
			score += SCORE_CENTER_DISK
		case opponent:
			score -= SCORE_CENTER_DISK
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			for _, dir := range windowDirections {
				endRow := row + dir[0]*(n-1)
				endCol := col + dir[1]*(n-1)
				if endRow < 0 || endRow >= rows || endCol >= columns {
					continue
				}
				own, opp := countWindow(board, row, col, dir[0], dir[1], perspective, opponent)
				score += scoreWindow(own, opp, n-own-opp, n)
			}
		}
	}

	return score
}

func countWindow(board *domain.Board, row, col, dRow, dCol int, perspective, opponent domain.PlayerID) (own, opp int) {
	for i := 0; i < board.WinLength(); i++ {
		switch board.CellAt(row+dRow*i, col+dCol*i) {
		case perspective:
			own++
		case opponent:
			opp++
		}
	}
	return own, opp
}

// scoreWindow rates one window. The rules are tried in order, own side
// first, so for win lengths of 1 and 2 an empty window matches the own-side
// rule and scores positive for whichever side is asking.
func scoreWindow(own, opp, empty, winLength int) int64 {
	if own > 0 && opp > 0 {
		return 0 // blocked
	}

	switch {
	case own == winLength:
		return SCORE_LINE
	case opp == winLength:
		return -SCORE_LINE
	case own == winLength-1 && empty == 1:
		return SCORE_ONE_AWAY
	case opp == winLength-1 && empty == 1:
		return -SCORE_ONE_AWAY
	case own == winLength-2 && empty == 2:
		return SCORE_TWO_AWAY
	case opp == winLength-2 && empty == 2:
		return -SCORE_TWO_AWAY
	case own == 1 && empty == winLength-1:
		return SCORE_FRESH_LINE
	case opp == 1 && empty == winLength-1:
		return -SCORE_FRESH_LINE
	}
	return 0
}
