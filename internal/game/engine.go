package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// dealerStickSum is the lowest sum the dealer sticks on.
const dealerStickSum = 17

// State is what the agent observes: its own sum and the dealer's first card.
type State struct {
	PlayerSum  int `json:"player_sum"`
	DealerCard int `json:"dealer_card"`
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.PlayerSum, s.DealerCard)
}

// Round is a snapshot of the full round, including cards the agent cannot
// observe.
type Round struct {
	Player   []Card
	Dealer   []Card
	Winner   Winner
	Terminal bool
}

// PlayerSum returns the sum of the player's cards.
func (r Round) PlayerSum() int {
	return sumCards(r.Player)
}

// DealerSum returns the sum of the dealer's cards.
func (r Round) DealerSum() int {
	return sumCards(r.Dealer)
}

func sumCards(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += int(c)
	}
	return total
}

// Engine runs Easy21 rounds.
type Engine struct {
	src    Source
	logger *log.Logger

	player   Hand
	dealer   Hand
	winner   Winner
	terminal bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output of draws and outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger.WithPrefix("game")
		}
	}
}

// NewEngine creates an engine drawing from src and deals the first round.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset deals one black card to each side and clears the outcome.
func (e *Engine) Reset() State {
	e.player = newHand(DrawBlack(e.src))
	e.dealer = newHand(DrawBlack(e.src))
	e.winner = Undetermined
	e.terminal = false

	e.logger.Debug("dealt", "player", e.player.First(), "dealer", e.dealer.First())
	return e.State()
}

// Step applies the player's action and returns the next observation, the
// reward and whether the round is over. Invalid actions and steps after the
// round has ended are rejected without changing any state.
func (e *Engine) Step(a Action) (State, int, bool, error) {
	if !a.Valid() {
		return e.State(), 0, e.terminal, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if e.terminal {
		return e.State(), e.winner.Reward(), true, fmt.Errorf("%w: winner is %s", ErrRoundOver, e.winner)
	}

	switch a {
	case Hit:
		e.hit()
	case Stick:
		e.stick()
	}

	return e.State(), e.winner.Reward(), e.terminal, nil
}

func (e *Engine) hit() {
	c := DrawCard(e.src)
	e.player.add(c)
	e.logger.Debug("player hit", "card", c, "sum", e.player.Sum())

	if e.player.IsBust() {
		e.winner = DealerWins
		e.terminal = true
		e.logger.Debug("player bust", "sum", e.player.Sum())
	}
}

func (e *Engine) stick() {
	e.playDealer()
	e.winner = compare(e.player.Sum(), e.dealer.Sum())
	e.terminal = true
	e.logger.Debug("round over",
		"player", e.player.Sum(),
		"dealer", e.dealer.Sum(),
		"winner", e.winner)
}

// playDealer draws until the dealer sticks on 17 or more, or has gone bust
// below 1.
func (e *Engine) playDealer() {
	for e.dealer.Sum() > 0 && e.dealer.Sum() < dealerStickSum {
		c := DrawCard(e.src)
		e.dealer.add(c)
		e.logger.Debug("dealer hit", "card", c, "sum", e.dealer.Sum())
	}
}

// State returns the current observation.
func (e *Engine) State() State {
	return State{
		PlayerSum:  e.player.Sum(),
		DealerCard: int(e.dealer.First()),
	}
}

// Round returns a copy of the full round.
func (e *Engine) Round() Round {
	return Round{
		Player:   e.player.Cards(),
		Dealer:   e.dealer.Cards(),
		Winner:   e.winner,
		Terminal: e.terminal,
	}
}

// Winner returns the outcome so far.
func (e *Engine) Winner() Winner {
	return e.winner
}

// Terminal reports whether the round has ended.
func (e *Engine) Terminal() bool {
	return e.terminal
}
