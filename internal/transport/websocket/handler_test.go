package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewConnectionManager(), game.NewSessionManager(), 3, 6, nil)
	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func expect(t *testing.T, conn *websocket.Conn, typ string) ServerMessage {
	t.Helper()
	msg := read(t, conn)
	if msg.Type != typ {
		t.Fatalf("expected %s, got %+v", typ, msg)
	}
	return msg
}

func TestBotOpensWhenHumanMovesSecond(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	conn.WriteJSON(ClientMessage{Type: "start", Rows: 4, Columns: 4, WinLength: 3, Difficulty: "medium", Depth: 3})

	state := expect(t, conn, "state")
	if state.You != domain.PlayerO || state.CurrentPlayer != domain.PlayerX || len(state.Board) != 4 {
		t.Fatalf("unexpected opening state %+v", state)
	}
	botMove := expect(t, conn, "bot_move")
	if botMove.Turn == nil || botMove.Turn.Column != 2 || botMove.Turn.Stats == nil || botMove.Turn.Stats.NodesExpanded != 84 {
		t.Fatalf("unexpected bot move %+v", botMove.Turn)
	}
	state = expect(t, conn, "state")
	if state.CurrentPlayer != domain.PlayerO || state.Board[0][2] != domain.PlayerX {
		t.Fatalf("bot move not on the board: %+v", state)
	}
	if h.SessionManager.ActiveCount() != 1 {
		t.Fatalf("expected one live session, got %d", h.SessionManager.ActiveCount())
	}

	conn.WriteJSON(ClientMessage{Type: "move", Column: 9})
	if msg := expect(t, conn, "error"); !strings.Contains(msg.Message, "column") {
		t.Fatalf("unexpected error %q", msg.Message)
	}

	conn.WriteJSON(ClientMessage{Type: "abandon"})
	conn.WriteJSON(ClientMessage{Type: "move", Column: 0})
	if msg := expect(t, conn, "error"); msg.Message != "Game not found" {
		t.Fatalf("unexpected error %q", msg.Message)
	}
	if h.SessionManager.ActiveCount() != 0 {
		t.Fatalf("abandoned session still live")
	}
}

func TestHumanMoveGetsReply(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)

	conn.WriteJSON(ClientMessage{Type: "start", Difficulty: "easy", HumanFirst: true, Seed: 7})
	if state := expect(t, conn, "state"); state.You != domain.PlayerX || len(state.Board) != domain.DefaultRows {
		t.Fatalf("unexpected state %+v", state)
	}

	conn.WriteJSON(ClientMessage{Type: "move", Column: 3})
	botMove := expect(t, conn, "bot_move")
	if botMove.Turn.Piece != domain.PlayerO || botMove.Turn.Stats != nil {
		t.Fatalf("random bot reply %+v", botMove.Turn)
	}
	state := expect(t, conn, "state")
	if state.Board[0][3] != domain.PlayerX || state.CurrentPlayer != domain.PlayerX {
		t.Fatalf("unexpected state after reply %+v", state)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for (h.ConnManager.Count() != 0 || h.SessionManager.ActiveCount() != 0) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if h.ConnManager.Count() != 0 || h.SessionManager.ActiveCount() != 0 {
		t.Fatalf("connection or session leaked after close")
	}
}

func TestStartRejectsBadDepthAndUnknownType(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	conn.WriteJSON(ClientMessage{Type: "start", Depth: 99})
	expect(t, conn, "error")

	conn.WriteJSON(ClientMessage{Type: "dance"})
	if msg := expect(t, conn, "error"); !strings.Contains(msg.Message, "dance") {
		t.Fatalf("unexpected error %q", msg.Message)
	}
}

func TestStartRejectsOversizedBoard(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)
	defer conn.Close()

	conn.WriteJSON(ClientMessage{Type: "start", Rows: 3, Columns: 1 << 61, WinLength: 3})
	expect(t, conn, "error")

	// the connection survives and can still start a normal game
	conn.WriteJSON(ClientMessage{Type: "start", Rows: domain.MaxRows, Columns: 4, WinLength: 4, HumanFirst: true})
	if state := expect(t, conn, "state"); len(state.Board) != domain.MaxRows {
		t.Fatalf("expected %d rows, got %d", domain.MaxRows, len(state.Board))
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://ok.example"})
	req := httptest.NewRequest("GET", "/ws", nil)
	if !check(req) {
		t.Fatalf("missing origin rejected")
	}
	req.Header.Set("Origin", "https://evil.example")
	if check(req) {
		t.Fatalf("foreign origin allowed")
	}
	if !originChecker(nil)(req) {
		t.Fatalf("empty allow list must allow everything")
	}
}
