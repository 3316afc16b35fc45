package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/tui"
)

// PlayCmd runs the interactive terminal UI.
type PlayCmd struct {
	Seed    int64  `help:"Environment seed (0 picks one at random)"`
	LogFile string `type:"path" help:"Write logs to this file instead of discarding them"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, _, err := g.setup()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	level := cfg.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	logger, err := newLoggerTo(out, level)
	if err != nil {
		return err
	}

	e := env.New(env.WithSeed(c.Seed), env.WithLogger(logger))
	logger.Info("Starting interactive play", "seed", e.SeedUsed())

	m := tui.New(e, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	t := m.Tally()
	logger.Info("Finished", "wins", t.Wins, "losses", t.Losses, "draws", t.Draws)
	return nil
}
