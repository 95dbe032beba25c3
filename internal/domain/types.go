package domain

// PlayerID is the value held by a board cell; it doubles as the piece
// symbol of the player who owns it.
type PlayerID int

const (
	Empty   PlayerID = 0
	PlayerX PlayerID = 1
	PlayerO PlayerID = 2
)

// Opponent returns the other piece. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (p PlayerID) Valid() bool {
	return p == PlayerX || p == PlayerO
}

func (p PlayerID) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "."
	}
}

// ParsePlayer maps "X"/"O" (either case) to a piece.
func ParsePlayer(s string) (PlayerID, error) {
	switch s {
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	default:
		return Empty, ErrInvalidPiece
	}
}

// classic Connect 4 dimensions, used when a request leaves them out
const (
	DefaultRows      = 6
	DefaultColumns   = 7
	DefaultWinLength = 4
)

// largest board NewBoard accepts in either dimension
const (
	MaxRows    = 64
	MaxColumns = 64
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrInvalidPiece  Error = "invalid piece"
	ErrNothingToUndo Error = "no move to undo"
	ErrUndoOrder     Error = "undo does not match the most recent move"
	ErrInvalidBoard  Error = "invalid board dimensions"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
)
