package bot

import (
	"slices"

	"github.com/iamasit07/connectn/internal/domain"
)

// OrderMoves returns candidates sorted by distance from the center column,
// closest first. Equal distances keep their input order, so with ascending
// input the left column of a pair comes first. candidates is not modified.
func OrderMoves(board *domain.Board, candidates []int) []int {
	center := board.CenterColumn()
	ordered := slices.Clone(candidates)
	slices.SortStableFunc(ordered, func(a, b int) int {
		return distFromCenter(a, center) - distFromCenter(b, center)
	})
	return ordered
}

func distFromCenter(col, center int) int {
	d := col - center
	if d < 0 {
		return -d
	}
	return d
}
