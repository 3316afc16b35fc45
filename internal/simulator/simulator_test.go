package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func mustFactory(t *testing.T, name string) bot.Factory {
	t.Helper()
	f, err := bot.Lookup(name)
	require.NoError(t, err)
	return f
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	run := func(workers int) *Result {
		res, err := New(Config{
			Episodes: 2000,
			Workers:  workers,
			Seed:     42,
			BotName:  "random",
			Bot:      mustFactory(t, "random"),
			Logger:   quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return res
	}

	single := run(1)
	parallel := run(8)
	assert.Equal(t, int64(42), single.Seed)
	assert.Equal(t, single.Stats.Values, parallel.Stats.Values)
	assert.Equal(t, single.Stats.Wins, parallel.Stats.Wins)
	assert.Equal(t, single.Stats.TotalSteps, parallel.Stats.TotalSteps)
}

func TestRunStatistics(t *testing.T) {
	clock := quartz.NewMock(t)
	res, err := New(Config{
		Episodes: 20000,
		Workers:  4,
		Seed:     7,
		BotName:  "stick",
		Bot:      mustFactory(t, "stick"),
		Clock:    clock,
	}).Run(context.Background())
	require.NoError(t, err)

	stats := res.Stats
	assert.Equal(t, 20000, stats.Episodes)
	require.NoError(t, stats.Validate())
	assert.Equal(t, 1.0, stats.MeanSteps(), "sticking takes exactly one action")
	assert.Zero(t, stats.PlayerBusts)
	assert.GreaterOrEqual(t, stats.Wins, stats.DealerBusts, "every dealer bust is a win when sticking")
	assert.InDelta(t, 0.05, stats.Mean(), 0.03)
	assert.Zero(t, res.Elapsed, "mock clock never advanced")
}

func TestRunRecordsReplayableEpisodes(t *testing.T) {
	rec := history.NewRecorder(0)
	res, err := New(Config{
		Episodes: 300,
		Workers:  3,
		Seed:     99,
		BotName:  "threshold",
		Bot:      mustFactory(t, "threshold"),
		Recorder: rec,
	}).Run(context.Background())
	require.NoError(t, err)

	episodes := rec.Episodes()
	require.Len(t, episodes, 300)
	for i, ep := range episodes {
		assert.Equal(t, i, ep.Index)
		assert.Equal(t, "threshold", ep.Bot)
		assert.Equal(t, res.Stats.Values[i], float64(ep.Reward))
		require.NoError(t, history.Replay(ep))
	}
}

func TestRunStepLimit(t *testing.T) {
	_, err := New(Config{
		Episodes: 200,
		Workers:  2,
		Seed:     1,
		MaxSteps: 1,
		Bot:      mustFactory(t, "hit"),
	}).Run(context.Background())
	assert.ErrorIs(t, err, ErrTooManySteps)
}

func TestRunValidation(t *testing.T) {
	_, err := New(Config{Episodes: 0, Bot: mustFactory(t, "stick")}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Episodes: 10}).Run(context.Background())
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Episodes: 100, Seed: 1, Bot: mustFactory(t, "random")}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayAndSummarize(t *testing.T) {
	e := env.New(env.WithSeed(5))
	start := e.State()

	ep, err := Play(e, bot.Always(game.Stick), 10)
	require.NoError(t, err)
	require.Len(t, ep.Steps, 1)
	assert.Equal(t, start, ep.Steps[0].State)
	assert.True(t, ep.Steps[0].Terminal)
	assert.Equal(t, int64(5), ep.Seed)
	assert.Equal(t, ep.Winner.Reward(), ep.Reward)

	res := Summarize(ep)
	assert.Equal(t, start.PlayerSum, res.PlayerSum)
	assert.False(t, res.PlayerBust)
	assert.Equal(t, ep.Winner, res.Winner)
	assert.Equal(t, 1, res.Steps)
}
