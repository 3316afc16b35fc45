// Package tui is an interactive terminal front end for playing Easy21 rounds
// by hand.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
)

// Tally counts finished rounds from the player's side.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
}

func (t *Tally) add(w game.Winner) {
	switch w {
	case game.PlayerWins:
		t.Wins++
	case game.DealerWins:
		t.Losses++
	case game.Draw:
		t.Draws++
	}
}

// Model is the Bubble Tea model for a single-player table.
type Model struct {
	env    *env.Env
	logger *log.Logger

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	gameLog  []string
	tally    Tally
	round    int
	quitting bool

	width  int
	height int
}

// New creates a model playing rounds from e. The first round is dealt
// immediately.
func New(e *env.Env, logger *log.Logger) *Model {
	vp := viewport.New(40, 8)
	m := &Model{
		env:      e,
		logger:   logger.WithPrefix("tui"),
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: vp,
	}
	m.newRound()
	return m
}

// Tally returns the results so far.
func (m *Model) Tally() Tally {
	return m.tally
}

// Log returns the round log, oldest first.
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-2, 1)
		m.viewport.Height = max(msg.Height-lipgloss.Height(m.renderTable())-4, 3)
		m.logger.Debug("Resized", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hit):
			m.step(game.Hit)
			return m, nil
		case key.Matches(msg, m.keys.Stick):
			m.step(game.Stick)
			return m, nil
		case key.Matches(msg, m.keys.New):
			m.newRound()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) newRound() {
	if m.round > 0 && !m.env.Round().Terminal {
		m.addLog(WarningStyle.Render("Round abandoned"))
	}
	st := m.env.Reset()
	m.round++
	m.logger.Debug("New round", "round", m.round, "state", st)
	m.addLog(HandStyle.Render(fmt.Sprintf("Round %d", m.round)))
	r := m.env.Round()
	m.addLog(fmt.Sprintf("You are dealt %s, the dealer shows %s", formatCard(r.Player[0]), formatCard(r.Dealer[0])))
}

func (m *Model) step(a game.Action) {
	before := len(m.env.Round().Dealer)
	_, reward, done, _, err := m.env.Step(int(a))
	if errors.Is(err, game.ErrRoundOver) {
		m.addLog(InfoStyle.Render("The round is over, press n to deal again"))
		return
	}
	if err != nil {
		m.logger.Error("Step failed", "action", a, "error", err)
		m.addLog(ErrorStyle.Render(err.Error()))
		return
	}

	r := m.env.Round()
	switch a {
	case game.Hit:
		m.addLog(fmt.Sprintf("You hit and draw %s (sum %d)", formatCard(r.Player[len(r.Player)-1]), r.PlayerSum()))
	case game.Stick:
		m.addLog(fmt.Sprintf("You stick on %d", r.PlayerSum()))
		for _, c := range r.Dealer[before:] {
			m.addLog(fmt.Sprintf("Dealer draws %s", formatCard(c)))
		}
		m.addLog(fmt.Sprintf("Dealer finishes on %d", r.DealerSum()))
	}

	if done {
		m.tally.add(r.Winner)
		m.addLog(formatResult(r.Winner, reward))
	}
}

func (m *Model) addLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.viewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Easy21"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(LogStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTable() string {
	r := m.env.Round()

	var dealer string
	if r.Terminal {
		dealer = fmt.Sprintf("%s  (%d)", formatCards(r.Dealer), r.DealerSum())
	} else {
		dealer = formatCard(r.Dealer[0]) + " " + HiddenCardStyle.Render("??")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dealer: %s\n", dealer)
	fmt.Fprintf(&b, "You:    %s  (%d)\n", formatCards(r.Player), r.PlayerSum())
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Won %d  Lost %d  Drawn %d", m.tally.Wins, m.tally.Losses, m.tally.Draws)))
	return b.String()
}

func formatCard(c game.Card) string {
	if c.Color() == game.Red {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

func formatCards(cards []game.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = formatCard(c)
	}
	return strings.Join(parts, " ")
}

func formatResult(w game.Winner, reward int) string {
	switch w {
	case game.PlayerWins:
		return SuccessStyle.Render(fmt.Sprintf("You win (%+d)", reward))
	case game.DealerWins:
		return ErrorStyle.Render(fmt.Sprintf("Dealer wins (%+d)", reward))
	default:
		return WarningStyle.Render("Draw (0)")
	}
}
