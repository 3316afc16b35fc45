package learn

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
)

// Sarsa is tabular Sarsa(lambda) with accumulating traces, undiscounted,
// using the same exploration and step-size schedule as MonteCarlo.
type Sarsa struct {
	Episodes int
	Lambda   float64
	N0       float64
	Seed     int64
	LogEvery int
	Logger   *log.Logger
	Progress Progress
}

// Train runs the configured number of episodes and returns the learned table.
func (m Sarsa) Train(ctx context.Context) (*QTable, error) {
	if m.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", m.Episodes)
	}
	if m.Lambda < 0 || m.Lambda > 1 {
		return nil, fmt.Errorf("lambda must be in [0, 1], got %g", m.Lambda)
	}
	logger := loggerOrDiscard(m.Logger).WithPrefix("sarsa")
	seed := randutil.Resolve(m.Seed)

	q := NewQTable()
	n := &counts{}
	policy := &explorer{q: q, n: n, n0: n0OrDefault(m.N0), src: randutil.New(randutil.Derive(seed, -1))}
	e := env.New(env.WithSeed(seed))

	logger.Info("training", "episodes", m.Episodes, "lambda", m.Lambda, "n0", policy.n0, "seed", seed)

	var trace QTable
	for ep := 1; ep <= m.Episodes; ep++ {
		if err := ctx.Err(); err != nil {
			return q, err
		}

		trace = QTable{}
		s := e.Reset()
		a := policy.Act(s)
		for {
			next, r, done, _, err := e.Step(int(a))
			if err != nil {
				return q, fmt.Errorf("episode %d: %w", ep, err)
			}

			delta := float64(r) - q.Value(s, a)
			var nextAction game.Action
			if !done {
				nextAction = policy.Act(next)
				delta += q.Value(next, nextAction)
			}

			n.visit(s, a)
			trace.add(s, a, 1)
			m.update(q, &trace, n, delta)

			if done {
				break
			}
			s, a = next, nextAction
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

// update applies delta to every pair with a live trace and decays the traces.
func (m Sarsa) update(q, trace *QTable, n *counts, delta float64) {
	for p := 0; p < PlayerSums; p++ {
		for d := 0; d < DealerCards; d++ {
			for a := 0; a < game.NumActions; a++ {
				e := trace.q[p][d][a]
				if e == 0 {
					continue
				}
				visits := n.n[p][d][a]
				q.q[p][d][a] += delta * e / float64(visits)
				trace.q[p][d][a] = e * m.Lambda
			}
		}
	}
}
