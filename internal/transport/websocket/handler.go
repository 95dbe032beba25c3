package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/internal/service/game"
	"github.com/rs/zerolog/log"
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	DefaultDepth   int
	MaxDepth       int
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, defaultDepth, maxDepth int, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		DefaultDepth:   defaultDepth,
		MaxDepth:       maxDepth,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// originChecker allows requests without an Origin header and those from
// the allowed list. An empty list allows everything.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == origin {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket upgrades the connection and plays games on it until the
// client goes away.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws-upgrade-failed")
		return
	}
	h.handleConnection(c.Request.Context(), conn)
}

func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	client := h.ConnManager.Add(conn)
	ctx, cancel := context.WithCancel(ctx)
	var session *game.Session

	defer func() {
		cancel()
		if session != nil {
			h.SessionManager.RemoveSession(session.ID)
		}
		h.ConnManager.Remove(client)
		log.Debug().Msg("ws-connection-closed")
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws-unexpected-close")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(errorMessage("Invalid message format"))
			continue
		}
		session = h.processMessage(ctx, client, session, msg)
	}
}

// processMessage handles one client message and returns the session the
// connection plays from now on.
func (h *Handler) processMessage(ctx context.Context, client *Client, session *game.Session, msg ClientMessage) *game.Session {
	switch msg.Type {
	case "start":
		if session != nil {
			h.SessionManager.RemoveSession(session.ID)
		}
		next, err := h.startSession(msg)
		if err != nil {
			client.Send(errorMessage(err.Error()))
			return nil
		}
		client.Send(stateMessage(next))

		// Bot opens when the human moves second.
		turn, err := next.BotMove(ctx)
		if err != nil {
			client.Send(errorMessage(err.Error()))
			return next
		}
		if turn != nil {
			h.sendTurns(client, next, []game.Turn{*turn})
		}
		return next

	case "move":
		if session == nil {
			client.Send(errorMessage("Game not found"))
			return nil
		}
		turns, err := session.HumanMove(ctx, msg.Column)
		if len(turns) > 0 {
			h.sendTurns(client, session, turns)
		}
		if err != nil {
			client.Send(errorMessage(err.Error()))
		}
		return session

	case "abandon":
		if session != nil {
			h.SessionManager.RemoveSession(session.ID)
		}
		return nil

	default:
		client.Send(errorMessage(fmt.Sprintf("Unknown message type %q", msg.Type)))
		return session
	}
}

func (h *Handler) startSession(msg ClientMessage) (*game.Session, error) {
	rows, cols, win := msg.Rows, msg.Columns, msg.WinLength
	if rows == 0 {
		rows = domain.DefaultRows
	}
	if cols == 0 {
		cols = domain.DefaultColumns
	}
	if win == 0 {
		win = domain.DefaultWinLength
	}
	depth := msg.Depth
	if depth == 0 {
		depth = h.DefaultDepth
	}
	if depth < 1 || (h.MaxDepth > 0 && depth > h.MaxDepth) {
		return nil, fmt.Errorf("%w: %d is outside 1..%d", bot.ErrInvalidDepth, depth, h.MaxDepth)
	}
	seed := msg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return h.SessionManager.CreateSession(game.SessionConfig{
		Rows:       rows,
		Columns:    cols,
		WinLength:  win,
		Difficulty: bot.ParseDifficulty(msg.Difficulty),
		Depth:      depth,
		HumanFirst: msg.HumanFirst,
		Seed:       seed,
	})
}

// sendTurns reports the bot's moves as bot_move, then the resulting state,
// then game_over when the game has ended.
func (h *Handler) sendTurns(client *Client, s *game.Session, turns []game.Turn) {
	for _, t := range turns {
		if t.Piece != s.Human {
			client.Send(ServerMessage{Type: "bot_move", GameID: s.ID, Turn: &t})
		}
	}
	state := stateMessage(s)
	client.Send(state)
	if state.Status != domain.StatusActive {
		client.Send(ServerMessage{Type: "game_over", GameID: s.ID, Status: state.Status, Winner: state.Winner})
	}
}
