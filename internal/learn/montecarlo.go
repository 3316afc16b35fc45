package learn

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
)

// Progress is called after every training episode with the number of
// episodes completed and the current table. The table must not be retained.
type Progress func(episode int, q *QTable)

// MonteCarlo is every-visit GLIE Monte Carlo control. Returns are
// undiscounted and the step size for each pair is 1/N(s, a).
type MonteCarlo struct {
	Episodes int
	N0       float64
	Seed     int64
	LogEvery int
	Logger   *log.Logger
	Progress Progress
}

type visit struct {
	state  game.State
	action game.Action
}

// Train runs the configured number of episodes and returns the learned table.
func (m MonteCarlo) Train(ctx context.Context) (*QTable, error) {
	if m.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", m.Episodes)
	}
	logger := loggerOrDiscard(m.Logger).WithPrefix("mc")
	seed := randutil.Resolve(m.Seed)

	q := NewQTable()
	n := &counts{}
	policy := &explorer{q: q, n: n, n0: n0OrDefault(m.N0), src: randutil.New(randutil.Derive(seed, -1))}
	e := env.New(env.WithSeed(seed))

	logger.Info("training", "episodes", m.Episodes, "n0", policy.n0, "seed", seed)

	var trajectory []visit
	for ep := 1; ep <= m.Episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return q, err
		}

		trajectory = trajectory[:0]
		s := e.Reset()
		var g int
		for {
			a := policy.Act(s)
			trajectory = append(trajectory, visit{s, a})
			next, r, done, _, err := e.Step(int(a))
			if err != nil {
				return q, fmt.Errorf("episode %d: %w", ep, err)
			}
			if done {
				g = r
				break
			}
			s = next
		}

		for _, v := range trajectory {
			count := n.visit(v.state, v.action)
			q.add(v.state, v.action, (float64(g)-q.Value(v.state, v.action))/float64(count))
		}

		if m.Progress != nil {
			m.Progress(ep, q)
		}
		if m.LogEvery > 0 && ep%m.LogEvery == 0 {
			logger.Debug("progress", "episode", ep)
		}
	}

	return q, nil
}

func loggerOrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}

func n0OrDefault(n0 float64) float64 {
	if n0 <= 0 {
		return DefaultN0
	}
	return n0
}
