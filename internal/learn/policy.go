package learn

import (
	"github.com/lox/easy21/internal/game"
)

// DefaultN0 is the exploration constant in epsilon = N0 / (N0 + N(s)).
const DefaultN0 = 100

// explorer is the GLIE epsilon-greedy behaviour policy shared by the
// learners. Epsilon decays per state as the state is visited.
type explorer struct {
	q   *QTable
	n   *counts
	n0  float64
	src game.Source
}

func (e *explorer) epsilon(s game.State) float64 {
	return e.n0 / (e.n0 + float64(e.n.state(s)))
}

// uniform returns a float in [0, 1) from the integer source.
func (e *explorer) uniform() float64 {
	const resolution = 1 << 30
	return float64(e.src.IntN(resolution)) / resolution
}

func (e *explorer) Act(s game.State) game.Action {
	if e.uniform() < e.epsilon(s) {
		return game.Action(e.src.IntN(game.NumActions))
	}
	return e.q.Best(s)
}
