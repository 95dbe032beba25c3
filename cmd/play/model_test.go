package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/internal/service/game"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs any returned command once, feeding its result
// back into the model.
func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, quit := out.(tea.QuitMsg); !quit {
				next, _ = m.Update(out)
				m = next.(model)
			}
		}
	}
	return m
}

func TestCursorAndDrop(t *testing.T) {
	m, err := newModel(game.SessionConfig{Rows: 4, Columns: 4, WinLength: 3, Difficulty: bot.DifficultyHard, Depth: 2, HumanFirst: true})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if m.cursor != 2 || m.Init() != nil {
		t.Fatalf("human first must start at the center with no command")
	}
	m = send(t, m, key("right"))
	m = send(t, m, key("right"))
	if m.cursor != 3 {
		t.Fatalf("cursor ran off the board: %d", m.cursor)
	}

	m = send(t, m, key("enter"))
	board, current, _, _ := m.session.Snapshot()
	if board.CellAt(0, 3) != domain.PlayerX || board.MoveCount() != 2 || current != domain.PlayerX {
		t.Fatalf("expected the human move and a bot reply:\n%s", board)
	}
	if m.thinking || m.lastBot == nil || m.lastBot.Stats == nil {
		t.Fatalf("bot reply not recorded")
	}
	if !strings.Contains(m.View(), "Bot played column") {
		t.Fatalf("view does not report the bot move:\n%s", m.View())
	}
}

func TestDigitKeysAndErrors(t *testing.T) {
	m, _ := newModel(game.SessionConfig{Rows: 1, Columns: 3, WinLength: 3, Difficulty: bot.DifficultyEasy, Depth: 1, HumanFirst: true, Seed: 1})
	m = send(t, m, key("1"))
	if m.cursor != 0 || m.session.Game.Board.ColumnFill(0) != 1 {
		t.Fatalf("digit key did not drop in column 1")
	}
	if m = send(t, m, key("1")); m.err == nil {
		t.Fatalf("dropping in a full column must show an error")
	}
	if m = send(t, m, key("9")); m.thinking {
		t.Fatalf("out of range digit must be ignored")
	}
}

func TestBotOpensAndRestart(t *testing.T) {
	m, _ := newModel(game.SessionConfig{Rows: 4, Columns: 4, WinLength: 3, Difficulty: bot.DifficultyMedium, Depth: 3})
	if !m.thinking {
		t.Fatalf("bot must be thinking when it moves first")
	}
	cmd := m.Init()
	next, _ := m.Update(cmd())
	m = next.(model)
	if m.lastBot == nil || m.lastBot.Column != 2 {
		t.Fatalf("unexpected bot opening %+v", m.lastBot)
	}

	m = send(t, m, key("r"))
	if m.session.Game.Board.MoveCount() != 1 || m.lastBot == nil {
		t.Fatalf("restart must start a fresh game with the bot opening again")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(game.SessionConfig{Rows: 4, Columns: 4, WinLength: 3, Difficulty: bot.DifficultyEasy, Depth: 1, HumanFirst: true})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q must return tea.Quit")
	}
}
