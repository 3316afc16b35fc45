package learn

import (
	"context"
	"testing"

	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meanReward plays episodes with b and returns the average reward.
func meanReward(t *testing.T, b bot.Bot, episodes int, seed int64) float64 {
	t.Helper()
	e := env.New(env.WithSeed(seed))
	total := 0
	for i := 0; i < episodes; i++ {
		s := e.Reset()
		for {
			next, r, done, _, err := e.Step(int(b.Act(s)))
			require.NoError(t, err)
			if done {
				total += r
				break
			}
			s = next
		}
	}
	return float64(total) / float64(episodes)
}

func TestQTableAccess(t *testing.T) {
	q := NewQTable()
	s := game.State{PlayerSum: 12, DealerCard: 3}

	q.Set(s, game.Hit, 0.5)
	q.Set(s, game.Stick, -0.2)
	assert.Equal(t, 0.5, q.Value(s, game.Hit))
	assert.Equal(t, game.Hit, q.Best(s))
	assert.Equal(t, 0.5, q.V(s))
	assert.Equal(t, game.Hit, q.Greedy().Act(s))

	// ties go to stick
	other := game.State{PlayerSum: 4, DealerCard: 9}
	assert.Equal(t, game.Stick, q.Best(other))

	// terminal observations are outside the table
	bust := game.State{PlayerSum: 25, DealerCard: 3}
	q.Set(bust, game.Hit, 9)
	assert.Zero(t, q.Value(bust, game.Hit))
	assert.Zero(t, q.Value(game.State{PlayerSum: 0, DealerCard: 3}, game.Stick))
}

func TestQTableEachAndClone(t *testing.T) {
	q := NewQTable()
	q.Set(game.State{PlayerSum: 21, DealerCard: 10}, game.Stick, 1)

	n := 0
	var seen float64
	q.Each(func(s game.State, a game.Action, v float64) {
		n++
		seen += v
	})
	assert.Equal(t, PlayerSums*DealerCards*game.NumActions, n)
	assert.Equal(t, 1.0, seen)

	c := q.Clone()
	c.Set(game.State{PlayerSum: 21, DealerCard: 10}, game.Stick, 0)
	assert.Equal(t, 1.0, q.Value(game.State{PlayerSum: 21, DealerCard: 10}, game.Stick))
}

func TestMeanSquaredError(t *testing.T) {
	a := NewQTable()
	b := NewQTable()
	assert.Zero(t, MeanSquaredError(a, b))

	a.Set(game.State{PlayerSum: 1, DealerCard: 1}, game.Hit, 2)
	want := 4.0 / float64(PlayerSums*DealerCards*game.NumActions)
	assert.InDelta(t, want, MeanSquaredError(a, b), 1e-12)
	assert.InDelta(t, want, MeanSquaredError(b, a), 1e-12)
}

func TestExplorerEpsilonDecays(t *testing.T) {
	n := &counts{}
	x := &explorer{q: NewQTable(), n: n, n0: 100, src: randutil.New(1)}
	s := game.State{PlayerSum: 10, DealerCard: 2}

	assert.Equal(t, 1.0, x.epsilon(s))
	for i := 0; i < 100; i++ {
		n.visit(s, game.Hit)
	}
	assert.InDelta(t, 0.5, x.epsilon(s), 1e-12)
}

func TestMonteCarloBeatsRandom(t *testing.T) {
	q, err := MonteCarlo{Episodes: 100000, Seed: 42}.Train(context.Background())
	require.NoError(t, err)

	learned := meanReward(t, q.Greedy(), 20000, 7)
	random := meanReward(t, bot.NewRandBot(randutil.New(8)), 20000, 7)
	assert.Greater(t, learned, random+0.08, "learned %.3f random %.3f", learned, random)

	var stick, hit float64
	for d := 1; d <= DealerCards; d++ {
		s := game.State{PlayerSum: 21, DealerCard: d}
		stick += q.Value(s, game.Stick)
		hit += q.Value(s, game.Hit)
	}
	assert.Greater(t, stick, hit, "sticking on 21 should be preferred")
}

func TestMonteCarloIsDeterministic(t *testing.T) {
	a, err := MonteCarlo{Episodes: 2000, Seed: 5}.Train(context.Background())
	require.NoError(t, err)
	b, err := MonteCarlo{Episodes: 2000, Seed: 5}.Train(context.Background())
	require.NoError(t, err)
	assert.Zero(t, MeanSquaredError(a, b))
}

func TestSarsaLearns(t *testing.T) {
	for _, lambda := range []float64{0, 0.5, 1} {
		q, err := Sarsa{Episodes: 60000, Lambda: lambda, Seed: 9}.Train(context.Background())
		require.NoError(t, err)

		learned := meanReward(t, q.Greedy(), 20000, 3)
		random := meanReward(t, bot.NewRandBot(randutil.New(4)), 20000, 3)
		assert.Greater(t, learned, random+0.06, "lambda %.1f learned %.3f random %.3f", lambda, learned, random)
	}
}

func TestSarsaProgressAndValidation(t *testing.T) {
	reference := NewQTable()
	var curve []float64
	_, err := Sarsa{
		Episodes: 500,
		Lambda:   0.3,
		Seed:     1,
		Progress: func(ep int, q *QTable) {
			curve = append(curve, MeanSquaredError(q, reference))
		},
	}.Train(context.Background())
	require.NoError(t, err)
	assert.Len(t, curve, 500)

	_, err = Sarsa{Episodes: 10, Lambda: 1.5}.Train(context.Background())
	assert.Error(t, err)
	_, err = Sarsa{Episodes: 0}.Train(context.Background())
	assert.Error(t, err)
	_, err = MonteCarlo{Episodes: -1}.Train(context.Background())
	assert.Error(t, err)
}

func TestTrainHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q, err := MonteCarlo{Episodes: 1000, Seed: 1}.Train(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, q)

	_, err = Sarsa{Episodes: 1000, Seed: 1}.Train(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
