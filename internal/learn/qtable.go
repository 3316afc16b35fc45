// Package learn trains tabular Easy21 policies with Monte Carlo control and
// Sarsa(lambda).
package learn

import (
	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/game"
)

const (
	// PlayerSums covers every non-terminal player sum, 1 to 21.
	PlayerSums = 21
	// DealerCards covers the dealer's opening card, 1 to 10.
	DealerCards = 10
)

// QTable holds action values for every non-terminal state.
type QTable struct {
	q [PlayerSums][DealerCards][game.NumActions]float64
}

// NewQTable returns a zeroed table.
func NewQTable() *QTable {
	return &QTable{}
}

// index maps a state onto table coordinates. Terminal observations (bust
// sums) have no entry.
func index(s game.State) (int, int, bool) {
	p, d := s.PlayerSum-1, s.DealerCard-1
	if p < 0 || p >= PlayerSums || d < 0 || d >= DealerCards {
		return 0, 0, false
	}
	return p, d, true
}

// Value returns Q(s, a), or 0 for states outside the table.
func (t *QTable) Value(s game.State, a game.Action) float64 {
	p, d, ok := index(s)
	if !ok || !a.Valid() {
		return 0
	}
	return t.q[p][d][a]
}

// Set assigns Q(s, a). States outside the table are ignored.
func (t *QTable) Set(s game.State, a game.Action, v float64) {
	p, d, ok := index(s)
	if !ok || !a.Valid() {
		return
	}
	t.q[p][d][a] = v
}

func (t *QTable) add(s game.State, a game.Action, delta float64) {
	p, d, ok := index(s)
	if !ok {
		return
	}
	t.q[p][d][a] += delta
}

// Best returns the greedy action. Ties go to Stick.
func (t *QTable) Best(s game.State) game.Action {
	if t.Value(s, game.Hit) > t.Value(s, game.Stick) {
		return game.Hit
	}
	return game.Stick
}

// V returns max_a Q(s, a).
func (t *QTable) V(s game.State) float64 {
	return t.Value(s, t.Best(s))
}

// Greedy returns a bot that always plays the best known action.
func (t *QTable) Greedy() bot.Bot {
	return bot.Func(t.Best)
}

// Clone returns an independent copy.
func (t *QTable) Clone() *QTable {
	c := *t
	return &c
}

// Each calls fn for every state-action pair in row-major order.
func (t *QTable) Each(fn func(s game.State, a game.Action, v float64)) {
	for p := 0; p < PlayerSums; p++ {
		for d := 0; d < DealerCards; d++ {
			for a := 0; a < game.NumActions; a++ {
				fn(game.State{PlayerSum: p + 1, DealerCard: d + 1}, game.Action(a), t.q[p][d][a])
			}
		}
	}
}

// MeanSquaredError averages (a - b)^2 over every state-action pair.
func MeanSquaredError(a, b *QTable) float64 {
	var sum float64
	n := 0
	for p := 0; p < PlayerSums; p++ {
		for d := 0; d < DealerCards; d++ {
			for x := 0; x < game.NumActions; x++ {
				diff := a.q[p][d][x] - b.q[p][d][x]
				sum += diff * diff
				n++
			}
		}
	}
	return sum / float64(n)
}

// counts tracks visit counts for step sizes and exploration.
type counts struct {
	n [PlayerSums][DealerCards][game.NumActions]int
}

func (c *counts) visit(s game.State, a game.Action) int {
	p, d, ok := index(s)
	if !ok {
		return 0
	}
	c.n[p][d][a]++
	return c.n[p][d][a]
}

func (c *counts) state(s game.State) int {
	p, d, ok := index(s)
	if !ok {
		return 0
	}
	total := 0
	for _, n := range c.n[p][d] {
		total += n
	}
	return total
}
