// Package simulator plays many Easy21 episodes with a bot and aggregates the
// results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/history"
	"github.com/lox/easy21/internal/randutil"
	"github.com/lox/easy21/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxSteps bounds the number of actions in one episode.
const DefaultMaxSteps = 1000

// ErrTooManySteps is returned when an episode does not finish within MaxSteps.
var ErrTooManySteps = errors.New("episode exceeded step limit")

// Config holds configuration for running simulations
type Config struct {
	Episodes int
	Workers  int
	Seed     int64
	MaxSteps int
	BotName  string
	Bot      bot.Factory
	Logger   *log.Logger
	Clock    quartz.Clock
	Recorder *history.Recorder
}

// Result is the outcome of a simulation run.
type Result struct {
	Stats   *statistics.Statistics
	Seed    int64
	Elapsed time.Duration
}

// Simulator runs Easy21 simulations
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultMaxSteps
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
		clock:  clock,
	}
}

// Run plays every episode and returns aggregated statistics. Each episode
// gets its own environment and bot seeded from (Seed, index), so results do
// not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", s.config.Episodes)
	}
	if s.config.Bot == nil {
		return nil, errors.New("no bot configured")
	}

	seed := randutil.Resolve(s.config.Seed)
	start := s.clock.Now()
	s.logger.Info("starting simulation",
		"episodes", s.config.Episodes,
		"workers", s.config.Workers,
		"bot", s.config.BotName,
		"seed", seed)

	results := make([]statistics.EpisodeResult, s.config.Episodes)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := 0; i < s.config.Episodes; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, ep, err := s.playEpisode(i, randutil.Derive(seed, i))
			if err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}
			results[i] = res
			if s.config.Recorder != nil {
				s.config.Recorder.Record(ep)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.clock.Since(start)
	s.logger.Info("simulation complete",
		"episodes", stats.Episodes,
		"mean", stats.Mean(),
		"elapsed", elapsed)

	return &Result{Stats: stats, Seed: seed, Elapsed: elapsed}, nil
}

func (s *Simulator) playEpisode(index int, seed int64) (statistics.EpisodeResult, history.Episode, error) {
	e := env.New(env.WithSeed(seed))
	b := s.config.Bot(randutil.New(randutil.Derive(seed, index)))

	ep, err := Play(e, b, s.config.MaxSteps)
	if err != nil {
		return statistics.EpisodeResult{}, ep, err
	}
	ep.Index = index
	ep.Bot = s.config.BotName
	return Summarize(ep), ep, nil
}

// Play runs b in e from the current state until the round ends and returns
// the recorded episode.
func Play(e *env.Env, b bot.Bot, maxSteps int) (history.Episode, error) {
	ep := history.Episode{Seed: e.SeedUsed()}
	s := e.State()
	for len(ep.Steps) < maxSteps {
		a := b.Act(s)
		next, reward, done, _, err := e.Step(int(a))
		if err != nil {
			return ep, err
		}
		ep.Steps = append(ep.Steps, history.Step{
			State:    s,
			Action:   a,
			Next:     next,
			Reward:   reward,
			Terminal: done,
		})
		if done {
			round := e.Round()
			ep.Reward = reward
			ep.Winner = round.Winner
			ep.PlayerCards = round.Player
			ep.DealerCards = round.Dealer
			return ep, nil
		}
		s = next
	}
	return ep, fmt.Errorf("%w (%d)", ErrTooManySteps, maxSteps)
}

// Summarize reduces a finished episode to the figures tracked by statistics.
func Summarize(ep history.Episode) statistics.EpisodeResult {
	round := game.Round{Player: ep.PlayerCards, Dealer: ep.DealerCards}
	player, dealer := round.PlayerSum(), round.DealerSum()
	return statistics.EpisodeResult{
		Reward:     ep.Reward,
		Seed:       ep.Seed,
		Steps:      len(ep.Steps),
		Winner:     ep.Winner,
		PlayerSum:  player,
		DealerSum:  dealer,
		PlayerBust: game.IsBust(player),
		DealerBust: game.IsBust(dealer),
	}
}
