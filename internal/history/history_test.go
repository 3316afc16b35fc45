package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordEpisode plays hit-below-17 from a fresh env and records it.
func recordEpisode(t *testing.T, index int, seed int64) Episode {
	t.Helper()
	e := env.New(env.WithSeed(seed))
	ep := Episode{Index: index, Seed: seed, Bot: "threshold"}
	s := e.State()
	for {
		a := game.Hit
		if s.PlayerSum >= 17 {
			a = game.Stick
		}
		next, r, done, _, err := e.Step(int(a))
		require.NoError(t, err)
		ep.Steps = append(ep.Steps, Step{State: s, Action: a, Next: next, Reward: r, Terminal: done})
		if done {
			round := e.Round()
			ep.Reward = r
			ep.Winner = round.Winner
			ep.PlayerCards = round.Player
			ep.DealerCards = round.Dealer
			return ep
		}
		s = next
	}
}

func TestNewID(t *testing.T) {
	id := NewID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, NewID())
}

func TestRecorderOrdersAndLimits(t *testing.T) {
	rec := NewRecorder(0)
	var wg sync.WaitGroup
	for i := 9; i >= 0; i-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Record(Episode{Index: i, Seed: int64(i + 1)})
		}()
	}
	wg.Wait()

	eps := rec.Episodes()
	require.Len(t, eps, 10)
	for i, ep := range eps {
		assert.Equal(t, i, ep.Index)
		assert.NotEmpty(t, ep.ID)
	}

	limited := NewRecorder(2)
	for i := 0; i < 5; i++ {
		limited.Record(Episode{Index: i})
	}
	assert.Equal(t, 2, limited.Len())
	assert.Equal(t, 3, limited.Dropped())
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	rec := NewRecorder(0)
	for i := 0; i < 5; i++ {
		rec.Record(recordEpisode(t, i, int64(100+i)))
	}

	path := filepath.Join(t.TempDir(), "episodes.jsonl")
	require.NoError(t, rec.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"action":`)
	assert.Contains(t, lines[0], `"winner":"`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Episodes(), loaded)

	for _, ep := range loaded {
		require.NoError(t, Replay(ep))
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(strings.NewReader(`{"id":"a"}` + "\n" + `{not json`))
	assert.Error(t, err)

	eps, err := Read(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, eps)
}

func TestReplayDetectsTampering(t *testing.T) {
	ep := recordEpisode(t, 0, 4242)
	require.NoError(t, Replay(ep))

	wrongWinner := ep
	wrongWinner.Steps = append([]Step(nil), ep.Steps...)
	wrongWinner.Winner = game.Undetermined
	err := Replay(wrongWinner)
	var div *DivergenceError
	require.ErrorAs(t, err, &div)
	assert.Equal(t, "winner", div.Field)
	assert.Equal(t, len(ep.Steps), div.Step)
	assert.Contains(t, err.Error(), "diverged")

	wrongReward := ep
	wrongReward.Steps = append([]Step(nil), ep.Steps...)
	last := len(wrongReward.Steps) - 1
	wrongReward.Steps[last].Reward = 5
	err = Replay(wrongReward)
	require.ErrorAs(t, err, &div)
	assert.Equal(t, "reward", div.Field)
	assert.Equal(t, last, div.Step)
}
