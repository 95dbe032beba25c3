package domain

// the four line directions: horizontal, vertical, diagonal / and diagonal \
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// IsWin reports whether the most recent move completed a line. Only lines
// through the last placement are checked.
func (b *Board) IsWin() bool {
	last, ok := b.LastMove()
	if !ok {
		return false
	}
	return b.lineThrough(last.Row, last.Column, last.Piece)
}

// Winner is the piece of the last move when it completed a line, Empty
// otherwise.
func (b *Board) Winner() PlayerID {
	if !b.IsWin() {
		return Empty
	}
	last, _ := b.LastMove()
	return last.Piece
}

func (b *Board) lineThrough(row, column int, player PlayerID) bool {
	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		total := 1 +
			b.CountDiskInDirection(row, column, dRow, dCol, player) +
			b.CountDiskInDirection(row, column, -dRow, -dCol, player)
		if total >= b.winLength {
			return true
		}
	}
	return false
}

// HasLine scans the whole board for a line of player's pieces.
func (b *Board) HasLine(player PlayerID) bool {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			if b.CellAt(r, c) == player && b.lineThrough(r, c, player) {
				return true
			}
		}
	}
	return false
}

// this counts the number of disks in a specific direction, not counting
// the starting cell
func (b *Board) CountDiskInDirection(row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < b.rows && c >= 0 && c < b.columns && b.cells[r*b.columns+c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
