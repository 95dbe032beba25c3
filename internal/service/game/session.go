package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/pkg/uid"
	"github.com/rs/zerolog/log"
)

var ErrSessionNotFound = errors.New("game session not found")

// SessionConfig describes a human-vs-bot game.
type SessionConfig struct {
	Rows       int
	Columns    int
	WinLength  int
	Difficulty bot.Difficulty
	Depth      int
	HumanFirst bool
	Seed       int64
}

// Turn is one move made in a session. Stats is set for searching bots.
type Turn struct {
	Column int             `json:"column"`
	Row    int             `json:"row"`
	Piece  domain.PlayerID `json:"piece"`
	Stats  *bot.Stats      `json:"stats,omitempty"`
}

// Session is a live game between one human and one bot.
type Session struct {
	ID           string
	Game         *domain.Game
	Human        domain.PlayerID
	Difficulty   bot.Difficulty
	Depth        int
	CreatedAt    time.Time
	lastActivity time.Time
	bot          bot.Player
	mu           sync.Mutex
}

func NewSession(cfg SessionConfig) (*Session, error) {
	g, err := domain.NewGame(cfg.Rows, cfg.Columns, cfg.WinLength)
	if err != nil {
		return nil, err
	}
	human := domain.PlayerO
	if cfg.HumanFirst {
		human = domain.PlayerX
	}
	p, err := bot.NewPlayer(human.Opponent(), cfg.Difficulty, cfg.Depth, cfg.Seed)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:           uid.GenerateGameID(),
		Game:         g,
		Human:        human,
		Difficulty:   cfg.Difficulty,
		Depth:        cfg.Depth,
		CreatedAt:    now,
		lastActivity: now,
		bot:          p,
	}, nil
}

func (s *Session) BotPiece() domain.PlayerID { return s.bot.Piece() }

// LastActivity is the time of the last accepted move.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Snapshot copies the board, next player and status under the session lock.
func (s *Session) Snapshot() (*domain.Board, domain.PlayerID, domain.GameStatus, domain.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Game.Board.Clone(), s.Game.CurrentPlayer, s.Game.Status, s.Game.Winner
}

// BotMove plays the bot's turn. It is a no-op returning nil when it is not
// the bot's turn.
func (s *Session) BotMove(ctx context.Context) (*Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Game.IsFinished() || s.Game.CurrentPlayer != s.bot.Piece() {
		return nil, nil
	}
	return s.botMoveLocked(ctx)
}

// HumanMove plays column for the human and, if the game goes on, the bot's
// reply. It returns the turns played in order.
func (s *Session) HumanMove(ctx context.Context, column int) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, err := s.Game.MakeMove(s.Human, column)
	if err != nil {
		return nil, err
	}
	s.lastActivity = time.Now()
	turns := []Turn{{Column: column, Row: row, Piece: s.Human}}
	if s.Game.IsFinished() {
		return turns, nil
	}

	reply, err := s.botMoveLocked(ctx)
	if err != nil {
		return turns, err
	}
	return append(turns, *reply), nil
}

func (s *Session) botMoveLocked(ctx context.Context) (*Turn, error) {
	var before bot.Stats
	agent, searching := s.bot.(*bot.Agent)
	if searching {
		before = agent.Stats()
	}

	col, err := s.bot.ChooseMove(ctx, s.Game.Board)
	if err != nil {
		return nil, fmt.Errorf("bot move: %w", err)
	}
	row, err := s.Game.MakeMove(s.bot.Piece(), col)
	if err != nil {
		return nil, fmt.Errorf("bot move: %w", err)
	}
	s.lastActivity = time.Now()

	turn := &Turn{Column: col, Row: row, Piece: s.bot.Piece()}
	if searching {
		after := agent.Stats()
		turn.Stats = &bot.Stats{
			NodesExpanded: after.NodesExpanded - before.NodesExpanded,
			NodesPruned:   after.NodesPruned - before.NodesPruned,
		}
	}
	return turn, nil
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (sm *SessionManager) CreateSession(cfg SessionConfig) (*Session, error) {
	s, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()

	log.Info().
		Str("game", s.ID).
		Str("difficulty", string(cfg.Difficulty)).
		Int("depth", cfg.Depth).
		Str("human", s.Human.String()).
		Msg("session-created")
	return s, nil
}

func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}

func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupIdleSessions drops sessions with no move for longer than maxIdle
// and returns how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	sm.mu.RLock()
	candidates := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		candidates = append(candidates, s)
	}
	sm.mu.RUnlock()

	// LastActivity waits out a move in progress, so it is read without
	// holding the manager lock.
	var stale []*Session
	for _, s := range candidates {
		if s.LastActivity().Before(cutoff) {
			stale = append(stale, s)
		}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	removed := 0
	for _, s := range stale {
		if cur, ok := sm.sessions[s.ID]; ok && cur == s {
			delete(sm.sessions, s.ID)
			removed++
		}
	}
	return removed
}

// SessionInfo is the listing view of a live session.
type SessionInfo struct {
	ID         string            `json:"id"`
	Rows       int               `json:"rows"`
	Columns    int               `json:"columns"`
	WinLength  int               `json:"winLength"`
	Difficulty bot.Difficulty    `json:"difficulty"`
	Depth      int               `json:"depth"`
	Human      domain.PlayerID   `json:"human"`
	Status     domain.GameStatus `json:"status"`
	MoveCount  int               `json:"moveCount"`
	StartedAt  time.Time         `json:"startedAt"`
}

// ActiveSessions lists live sessions, oldest first.
func (sm *SessionManager) ActiveSessions() []SessionInfo {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	out := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		b := s.Game.Board
		out = append(out, SessionInfo{
			ID:         s.ID,
			Rows:       b.Rows(),
			Columns:    b.Columns(),
			WinLength:  b.WinLength(),
			Difficulty: s.Difficulty,
			Depth:      s.Depth,
			Human:      s.Human,
			Status:     s.Game.Status,
			MoveCount:  b.MoveCount(),
			StartedAt:  s.CreatedAt,
		})
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}
