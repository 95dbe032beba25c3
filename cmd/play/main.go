package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iamasit07/connectn/internal/config"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/internal/service/game"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	envErr := config.LoadEnvFile()
	cfg := config.LoadConfig()

	rows := flag.Int("rows", domain.DefaultRows, "board rows")
	cols := flag.Int("columns", domain.DefaultColumns, "board columns")
	win := flag.Int("win", domain.DefaultWinLength, "pieces in a row needed to win")
	difficulty := flag.String("difficulty", "hard", "easy, medium or hard")
	depth := flag.Int("depth", cfg.AlphaBetaDepth, "bot search depth")
	second := flag.Bool("second", false, "let the bot move first")
	flag.Parse()

	config.SetupLogging(cfg.LogLevel, "console", os.Stderr)
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}
	// Log lines would tear the terminal UI.
	zerolog.SetGlobalLevel(zerolog.Disabled)

	m, err := newModel(game.SessionConfig{
		Rows:       *rows,
		Columns:    *cols,
		WinLength:  *win,
		Difficulty: bot.ParseDifficulty(*difficulty),
		Depth:      *depth,
		HumanFirst: !*second,
		Seed:       time.Now().UnixNano(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
