package history

import (
	"fmt"
	"slices"

	"github.com/lox/easy21/internal/env"
)

// DivergenceError reports the first point where a replay differs from the
// recording.
type DivergenceError struct {
	Episode string
	Step    int
	Field   string
	Want    any
	Got     any
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("episode %s diverged at step %d: %s recorded %v, replayed %v",
		e.Episode, e.Step, e.Field, e.Want, e.Got)
}

// Replay re-runs the recorded actions against a fresh environment seeded with
// the episode's seed and checks every transition and the final hands.
func Replay(ep Episode) error {
	e := env.New(env.WithSeed(ep.Seed))
	diverged := func(step int, field string, want, got any) error {
		return &DivergenceError{Episode: ep.ID, Step: step, Field: field, Want: want, Got: got}
	}

	for i, st := range ep.Steps {
		if s := e.State(); s != st.State {
			return diverged(i, "state", st.State, s)
		}
		next, reward, done, _, err := e.Step(int(st.Action))
		if err != nil {
			return fmt.Errorf("episode %s step %d: %w", ep.ID, i, err)
		}
		if next != st.Next {
			return diverged(i, "next", st.Next, next)
		}
		if reward != st.Reward {
			return diverged(i, "reward", st.Reward, reward)
		}
		if done != st.Terminal {
			return diverged(i, "terminal", st.Terminal, done)
		}
	}

	round := e.Round()
	last := len(ep.Steps)
	if round.Winner != ep.Winner {
		return diverged(last, "winner", ep.Winner, round.Winner)
	}
	if !slices.Equal(round.Player, ep.PlayerCards) {
		return diverged(last, "player cards", ep.PlayerCards, round.Player)
	}
	if !slices.Equal(round.Dealer, ep.DealerCards) {
		return diverged(last, "dealer cards", ep.DealerCards, round.Dealer)
	}
	return nil
}
