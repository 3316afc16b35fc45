package env

import (
	"testing"

	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transition struct {
	state  game.State
	reward int
	done   bool
}

func playScripted(t *testing.T, e *Env, actions []int) []transition {
	t.Helper()
	var out []transition
	for _, a := range actions {
		s, r, done, info, err := e.Step(a)
		require.NoError(t, err)
		assert.Empty(t, info)
		out = append(out, transition{s, r, done})
		if done {
			break
		}
	}
	return out
}

func TestSeedReproducesTrajectory(t *testing.T) {
	actions := []int{1, 1, 1, 0}

	a := New(WithSeed(1234))
	b := New(WithSeed(1234))
	assert.Equal(t, a.State(), b.State())
	assert.Equal(t, playScripted(t, a, actions), playScripted(t, b, actions))
	assert.Equal(t, a.Round(), b.Round())

	// reseeding an existing env with the same seed restarts the sequence
	used := a.Seed(1234)
	assert.Equal(t, int64(1234), used)
	c := New(WithSeed(1234))
	assert.Equal(t, c.State(), a.State())
}

func TestSeedZeroPicksRandomSeed(t *testing.T) {
	e := New()
	used := e.SeedUsed()
	assert.NotZero(t, used)

	replay := New(WithSeed(used))
	assert.Equal(t, replay.State(), e.State())

	used2 := e.Seed(0)
	assert.NotZero(t, used2)
	assert.Equal(t, used2, e.SeedUsed())
}

func TestStepActionEncoding(t *testing.T) {
	e := New(WithSeed(8))
	start := e.State()

	_, _, done, _, err := e.Step(0)
	require.NoError(t, err)
	assert.True(t, done, "stick always ends the round")
	assert.Equal(t, start.PlayerSum, e.State().PlayerSum)

	e.Reset()
	before := e.Round()
	_, _, _, _, err = e.Step(1)
	require.NoError(t, err)
	assert.Len(t, e.Round().Player, len(before.Player)+1)
}

func TestStepRejectsOutOfSpace(t *testing.T) {
	e := New(WithSeed(3))
	before := e.Round()

	for _, a := range []int{-1, 2, 100} {
		_, reward, done, info, err := e.Step(a)
		assert.ErrorIs(t, err, game.ErrInvalidAction)
		assert.Equal(t, 0, reward)
		assert.False(t, done)
		assert.NotNil(t, info)
	}
	assert.Equal(t, before, e.Round())
}

func TestStepAfterDone(t *testing.T) {
	e := New(WithSeed(11))
	_, reward, done, _, err := e.Step(0)
	require.NoError(t, err)
	require.True(t, done)

	_, again, stillDone, _, err := e.Step(1)
	assert.ErrorIs(t, err, game.ErrRoundOver)
	assert.Equal(t, reward, again)
	assert.True(t, stillDone)
}

func TestActionSpace(t *testing.T) {
	e := New(WithSeed(1))
	space := e.ActionSpace()
	assert.Equal(t, 2, space.N)
	assert.True(t, space.Contains(0))
	assert.True(t, space.Contains(1))
	assert.False(t, space.Contains(2))
	assert.False(t, space.Contains(-1))

	rng := randutil.New(5)
	seen := map[int]int{}
	for i := 0; i < 1000; i++ {
		a := space.Sample(rng)
		require.True(t, space.Contains(a))
		seen[a]++
	}
	assert.Len(t, seen, 2)
}

func TestRewardRange(t *testing.T) {
	e := New(WithSeed(77))
	rng := randutil.New(78)
	for i := 0; i < 2000; i++ {
		e.Reset()
		for {
			_, r, done, _, err := e.Step(e.ActionSpace().Sample(rng))
			require.NoError(t, err)
			if !done {
				assert.Equal(t, 0, r)
				continue
			}
			assert.Contains(t, []int{-1, 0, 1}, r)
			assert.Equal(t, e.Round().Winner.Reward(), r)
			break
		}
	}
}
