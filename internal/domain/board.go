package domain

import (
	"fmt"
	"strings"
)

// Move records one placement. Row 0 is the bottom of the board.
type Move struct {
	Row    int
	Column int
	Piece  PlayerID
}

// Board is a gravity grid of rows x columns where a line of WinLength
// pieces wins. It is mutated in place by ApplyMove/UndoMove, which must be
// paired in strict LIFO order; the move stack enforces that.
type Board struct {
	rows      int
	columns   int
	winLength int
	cells     []PlayerID
	fill      []int
	moves     []Move
}

func NewBoard(rows, columns, winLength int) (*Board, error) {
	if rows < 1 || columns < 1 || rows > MaxRows || columns > MaxColumns ||
		winLength < 1 || winLength > max(rows, columns) {
		return nil, fmt.Errorf("%w: %dx%d with win length %d", ErrInvalidBoard, rows, columns, winLength)
	}
	return &Board{
		rows:      rows,
		columns:   columns,
		winLength: winLength,
		cells:     make([]PlayerID, rows*columns),
		fill:      make([]int, columns),
		moves:     make([]Move, 0, rows*columns),
	}, nil
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Columns() int   { return b.columns }
func (b *Board) WinLength() int { return b.winLength }

// CenterColumn is columns/2, which is the right-of-center column when the
// column count is even.
func (b *Board) CenterColumn() int { return b.columns / 2 }

// CellAt returns the piece at (row, column). Out of range reads are Empty.
func (b *Board) CellAt(row, column int) PlayerID {
	if row < 0 || row >= b.rows || column < 0 || column >= b.columns {
		return Empty
	}
	return b.cells[row*b.columns+column]
}

// ColumnFill is the number of pieces stacked in column.
func (b *Board) ColumnFill(column int) int {
	if column < 0 || column >= b.columns {
		return 0
	}
	return b.fill[column]
}

func (b *Board) MoveCount() int { return len(b.moves) }

// Moves returns a copy of the placement history, oldest first.
func (b *Board) Moves() []Move {
	out := make([]Move, len(b.moves))
	copy(out, b.moves)
	return out
}

// LastMove is the most recent placement still on the board.
func (b *Board) LastMove() (Move, bool) {
	if len(b.moves) == 0 {
		return Move{}, false
	}
	return b.moves[len(b.moves)-1], true
}

func (b *Board) IsValidMove(column int) bool {
	return column >= 0 && column < b.columns && b.fill[column] < b.rows
}

// LegalColumns lists the non-full columns in ascending order. It is empty
// when the board is full.
func (b *Board) LegalColumns() []int {
	legal := make([]int, 0, b.columns)
	for c := 0; c < b.columns; c++ {
		if b.fill[c] < b.rows {
			legal = append(legal, c)
		}
	}
	return legal
}

func (b *Board) IsFull() bool {
	return len(b.moves) == b.rows*b.columns
}

// ApplyMove drops piece into column and returns the row it landed on.
func (b *Board) ApplyMove(column int, piece PlayerID) (int, error) {
	if !piece.Valid() {
		return -1, ErrInvalidPiece
	}
	if column < 0 || column >= b.columns {
		return -1, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	row := b.fill[column]
	if row >= b.rows {
		return -1, fmt.Errorf("%w: %d", ErrColumnFull, column)
	}
	b.cells[row*b.columns+column] = piece
	b.fill[column]++
	b.moves = append(b.moves, Move{Row: row, Column: column, Piece: piece})
	return row, nil
}

// UndoMove removes the most recent placement, which must be in column.
func (b *Board) UndoMove(column int) error {
	if len(b.moves) == 0 {
		return ErrNothingToUndo
	}
	last := b.moves[len(b.moves)-1]
	if last.Column != column {
		return fmt.Errorf("%w: undo column %d, last move in column %d", ErrUndoOrder, column, last.Column)
	}
	b.moves = b.moves[:len(b.moves)-1]
	b.fill[column]--
	b.cells[last.Row*b.columns+column] = Empty
	return nil
}

// WithMove applies piece to column, runs fn, and undoes the move before
// returning. The undo also runs when fn panics. A failed undo means the
// board no longer matches its move stack and panics.
func (b *Board) WithMove(column int, piece PlayerID, fn func()) error {
	if _, err := b.ApplyMove(column, piece); err != nil {
		return err
	}
	defer func() {
		if err := b.UndoMove(column); err != nil {
			panic(fmt.Sprintf("board corrupted: %v", err))
		}
	}()
	fn()
	return nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	c := &Board{
		rows:      b.rows,
		columns:   b.columns,
		winLength: b.winLength,
		cells:     make([]PlayerID, len(b.cells)),
		fill:      make([]int, len(b.fill)),
		moves:     make([]Move, len(b.moves), cap(b.moves)),
	}
	copy(c.cells, b.cells)
	copy(c.fill, b.fill)
	copy(c.moves, b.moves)
	return c
}

// Equal reports whether both boards have the same dimensions, cells, fills
// and move history.
func (b *Board) Equal(o *Board) bool {
	if b.rows != o.rows || b.columns != o.columns || b.winLength != o.winLength {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	for i := range b.fill {
		if b.fill[i] != o.fill[i] {
			return false
		}
	}
	if len(b.moves) != len(o.moves) {
		return false
	}
	for i := range b.moves {
		if b.moves[i] != o.moves[i] {
			return false
		}
	}
	return true
}

// Grid returns the cells as [row][column] with row 0 at the bottom.
func (b *Board) Grid() [][]PlayerID {
	grid := make([][]PlayerID, b.rows)
	for r := range grid {
		grid[r] = make([]PlayerID, b.columns)
		copy(grid[r], b.cells[r*b.columns:(r+1)*b.columns])
	}
	return grid
}

// String draws the board top row first using '.', 'X' and 'O'.
func (b *Board) String() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		for c := 0; c < b.columns; c++ {
			sb.WriteString(b.CellAt(r, c).String())
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads the String form back. Pieces must rest on the bottom or
// on another piece, and the position must not already contain a line. The
// move history is rebuilt column by column, so LastMove of a parsed board
// carries no turn information.
func ParseBoard(s string, winLength int) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	rows := len(lines)
	columns := len(lines[0])
	b, err := NewBoard(rows, columns, winLength)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if len(line) != columns {
			return nil, fmt.Errorf("%w: ragged rows", ErrInvalidBoard)
		}
	}
	for c := 0; c < columns; c++ {
		gap := false
		for r := 0; r < rows; r++ {
			ch := lines[rows-1-r][c]
			if ch == '.' {
				gap = true
				continue
			}
			piece, err := ParsePlayer(string(ch))
			if err != nil {
				return nil, fmt.Errorf("%w: %q at row %d column %d", ErrInvalidBoard, ch, r, c)
			}
			if gap {
				return nil, fmt.Errorf("%w: floating piece at row %d column %d", ErrInvalidBoard, r, c)
			}
			if _, err := b.ApplyMove(c, piece); err != nil {
				return nil, err
			}
		}
	}
	if b.HasLine(PlayerX) || b.HasLine(PlayerO) {
		return nil, ErrGameOver
	}
	return b, nil
}
