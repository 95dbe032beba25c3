package domain

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, rows, columns, winLength int) *Board {
	t.Helper()
	b, err := NewBoard(rows, columns, winLength)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d, %d): %v", rows, columns, winLength, err)
	}
	return b
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	cases := []struct{ rows, columns, win int }{
		{0, 7, 4},
		{6, 0, 4},
		{6, 7, 0},
		{3, 3, 4},
		{MaxRows + 1, 7, 4},
		{6, MaxColumns + 1, 4},
		{3, 1 << 61, 3},
	}
	for _, tc := range cases {
		if _, err := NewBoard(tc.rows, tc.columns, tc.win); !errors.Is(err, ErrInvalidBoard) {
			t.Fatalf("NewBoard(%d, %d, %d) error = %v, want ErrInvalidBoard", tc.rows, tc.columns, tc.win, err)
		}
	}
}

func TestNewBoardAcceptsLargestBoard(t *testing.T) {
	b, err := NewBoard(MaxRows, MaxColumns, MaxRows)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d, %d): %v", MaxRows, MaxColumns, MaxRows, err)
	}
	if got := len(b.LegalColumns()); got != MaxColumns {
		t.Fatalf("expected %d legal columns, got %d", MaxColumns, got)
	}
}

func TestApplyMoveStacksFromBottom(t *testing.T) {
	b := mustBoard(t, 3, 4, 3)
	for want := 0; want < 3; want++ {
		row, err := b.ApplyMove(2, PlayerX)
		if err != nil {
			t.Fatalf("apply %d: %v", want, err)
		}
		if row != want {
			t.Fatalf("expected row %d, got %d", want, row)
		}
	}
	if b.ColumnFill(2) != 3 {
		t.Fatalf("expected fill 3, got %d", b.ColumnFill(2))
	}
	if _, err := b.ApplyMove(2, PlayerO); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if got := b.LegalColumns(); len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 3 {
		t.Fatalf("unexpected legal columns %v", got)
	}
}

func TestApplyMoveChecksPreconditions(t *testing.T) {
	b := mustBoard(t, 3, 3, 3)
	if _, err := b.ApplyMove(-1, PlayerX); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if _, err := b.ApplyMove(3, PlayerX); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if _, err := b.ApplyMove(0, Empty); !errors.Is(err, ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}
}

func TestUndoMoveIsStrictlyLIFO(t *testing.T) {
	b := mustBoard(t, 4, 4, 3)
	if err := b.UndoMove(0); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	before := b.Clone()
	b.ApplyMove(1, PlayerX)
	b.ApplyMove(2, PlayerO)
	if err := b.UndoMove(1); !errors.Is(err, ErrUndoOrder) {
		t.Fatalf("expected ErrUndoOrder, got %v", err)
	}
	if err := b.UndoMove(2); err != nil {
		t.Fatalf("undo 2: %v", err)
	}
	last, ok := b.LastMove()
	if !ok || last.Column != 1 || last.Piece != PlayerX {
		t.Fatalf("expected last move restored to X in column 1, got %+v", last)
	}
	if err := b.UndoMove(1); err != nil {
		t.Fatalf("undo 1: %v", err)
	}
	if !b.Equal(before) {
		t.Fatalf("board not restored:\n%s", b)
	}
}

func TestWithMoveUndoesOnPanic(t *testing.T) {
	b := mustBoard(t, 4, 4, 3)
	before := b.Clone()
	func() {
		defer func() { recover() }()
		b.WithMove(0, PlayerX, func() {
			if b.CellAt(0, 0) != PlayerX {
				t.Fatalf("move not applied inside WithMove")
			}
			panic("boom")
		})
	}()
	if !b.Equal(before) {
		t.Fatalf("board not restored after panic:\n%s", b)
	}
}

func TestWithMoveReportsIllegalColumn(t *testing.T) {
	b := mustBoard(t, 1, 2, 1)
	b.ApplyMove(0, PlayerX)
	called := false
	err := b.WithMove(0, PlayerO, func() { called = true })
	if !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if called {
		t.Fatalf("callback ran for an illegal move")
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	src := "" +
		"....\n" +
		"..O.\n" +
		".XX.\n" +
		"OXOX"
	b, err := ParseBoard(src, 4)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	if b.String() != src {
		t.Fatalf("round trip mismatch:\n%s\nwant\n%s", b, src)
	}
	if b.ColumnFill(2) != 3 || b.ColumnFill(3) != 1 {
		t.Fatalf("unexpected fills %d %d", b.ColumnFill(2), b.ColumnFill(3))
	}
	if b.CellAt(0, 0) != PlayerO || b.CellAt(2, 2) != PlayerO {
		t.Fatalf("row 0 must be the bottom line")
	}
}

func TestParseBoardRejectsFloatingPieces(t *testing.T) {
	_, err := ParseBoard("X.\n..", 2)
	if !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestParseBoardRejectsFinishedPosition(t *testing.T) {
	_, err := ParseBoard("...\n...\nXXX", 3)
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, 3, 3, 3)
	b.ApplyMove(1, PlayerX)
	c := b.Clone()
	c.ApplyMove(1, PlayerO)
	if b.ColumnFill(1) != 1 || b.CellAt(1, 1) != Empty {
		t.Fatalf("clone shares state with original")
	}
	if b.Equal(c) {
		t.Fatalf("boards with different histories compare equal")
	}
}
