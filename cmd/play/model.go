package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/game"
)

type turnsMsg struct {
	turns []game.Turn
	err   error
}

type model struct {
	cfg      game.SessionConfig
	session  *game.Session
	cursor   int
	thinking bool
	lastBot  *game.Turn
	status   string
	err      error
}

func newModel(cfg game.SessionConfig) (model, error) {
	s, err := game.NewSession(cfg)
	if err != nil {
		return model{}, err
	}
	m := model{cfg: cfg, session: s, cursor: s.Game.Board.CenterColumn()}
	if s.Human != domain.PlayerX {
		m.thinking = true
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	if m.thinking {
		return botOpening(m.session)
	}
	return nil
}

func botOpening(s *game.Session) tea.Cmd {
	return func() tea.Msg {
		t, err := s.BotMove(context.Background())
		if err != nil || t == nil {
			return turnsMsg{err: err}
		}
		return turnsMsg{turns: []game.Turn{*t}}
	}
}

func humanMove(s *game.Session, col int) tea.Cmd {
	return func() tea.Msg {
		turns, err := s.HumanMove(context.Background(), col)
		return turnsMsg{turns: turns, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case turnsMsg:
		m.thinking = false
		m.err = msg.err
		for i := range msg.turns {
			if msg.turns[i].Piece != m.session.Human {
				t := msg.turns[i]
				m.lastBot = &t
			}
		}
		m.status = m.result()
	}
	return m, nil
}

func (m model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := k.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		next, err := newModel(m.cfg)
		if err != nil {
			m.err = err
			return m, nil
		}
		return next, next.Init()
	}
	if m.thinking || m.session.Game.IsFinished() {
		return m, nil
	}

	cols := m.session.Game.Board.Columns()
	switch key {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < cols-1 {
			m.cursor++
		}
	case "enter", " ":
		m.thinking = true
		m.err = nil
		return m, humanMove(m.session, m.cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if col := int(key[0] - '1'); col < cols {
				m.cursor = col
				m.thinking = true
				m.err = nil
				return m, humanMove(m.session, col)
			}
		}
	}
	return m, nil
}

func (m model) result() string {
	_, _, status, winner := m.session.Snapshot()
	switch status {
	case domain.StatusWon:
		if winner == m.session.Human {
			return "You win! Press r to play again."
		}
		return "The bot wins. Press r to play again."
	case domain.StatusDraw:
		return "Draw. Press r to play again."
	}
	return ""
}

func (m model) View() string {
	board, _, _, _ := m.session.Snapshot()
	var sb strings.Builder

	fmt.Fprintf(&sb, "Connect %d on %dx%d  |  you are %s, bot is %s (%s, depth %d)\n\n",
		board.WinLength(), board.Rows(), board.Columns(), m.session.Human, m.session.BotPiece(),
		m.session.Difficulty, m.session.Depth)

	sb.WriteString(" ")
	for c := 0; c < board.Columns(); c++ {
		if c == m.cursor && !m.thinking {
			sb.WriteString("v ")
		} else {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")
	for r := board.Rows() - 1; r >= 0; r-- {
		sb.WriteString("|")
		for c := 0; c < board.Columns(); c++ {
			sb.WriteString(board.CellAt(r, c).String())
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(" ")
	for c := 0; c < board.Columns(); c++ {
		fmt.Fprintf(&sb, "%d ", (c+1)%10)
	}
	sb.WriteString("\n\n")

	if m.lastBot != nil {
		fmt.Fprintf(&sb, "Bot played column %d", m.lastBot.Column+1)
		if m.lastBot.Stats != nil {
			fmt.Fprintf(&sb, " (%d nodes, %d pruned)", m.lastBot.Stats.NodesExpanded, m.lastBot.Stats.NodesPruned)
		}
		sb.WriteString("\n")
	}
	switch {
	case m.thinking:
		sb.WriteString("Bot is thinking...\n")
	case m.err != nil:
		fmt.Fprintf(&sb, "Error: %v\n", m.err)
	case m.status != "":
		sb.WriteString(m.status + "\n")
	}
	sb.WriteString("\n←/→ or 1-9 to pick, enter to drop, r to restart, q to quit\n")
	return sb.String()
}
