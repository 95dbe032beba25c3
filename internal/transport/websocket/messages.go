package websocket

import (
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/game"
)

// ClientMessage is anything the browser sends. Type is "start", "move" or
// "abandon".
type ClientMessage struct {
	Type       string `json:"type"`
	Rows       int    `json:"rows,omitempty"`
	Columns    int    `json:"columns,omitempty"`
	WinLength  int    `json:"winLength,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Depth      int    `json:"depth,omitempty"`
	HumanFirst bool   `json:"humanFirst,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	Column     int    `json:"column"`
}

// ServerMessage is anything the server sends: "state", "bot_move",
// "game_over" or "error".
type ServerMessage struct {
	Type          string              `json:"type"`
	GameID        string              `json:"gameId,omitempty"`
	Message       string              `json:"message,omitempty"`
	Board         [][]domain.PlayerID `json:"board,omitempty"` // row 0 is the bottom
	CurrentPlayer domain.PlayerID     `json:"currentPlayer,omitempty"`
	You           domain.PlayerID     `json:"you,omitempty"`
	Status        domain.GameStatus   `json:"status,omitempty"`
	Winner        domain.PlayerID     `json:"winner,omitempty"`
	Turn          *game.Turn          `json:"turn,omitempty"`
}

func stateMessage(s *game.Session) ServerMessage {
	board, current, status, winner := s.Snapshot()
	return ServerMessage{
		Type:          "state",
		GameID:        s.ID,
		Board:         board.Grid(),
		CurrentPlayer: current,
		You:           s.Human,
		Status:        status,
		Winner:        winner,
	}
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: "error", Message: msg}
}
