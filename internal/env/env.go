// Package env exposes the Easy21 engine through the reset/step/seed surface
// expected by reinforcement learning harnesses.
package env

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
)

// Info carries auxiliary step data. It is currently always empty.
type Info map[string]any

// Discrete is a finite action space {0, ..., N-1}.
type Discrete struct {
	N int
}

// Contains reports whether a is a member of the space.
func (d Discrete) Contains(a int) bool {
	return a >= 0 && a < d.N
}

// Sample draws a uniform action from the space.
func (d Discrete) Sample(src game.Source) int {
	return src.IntN(d.N)
}

// Env is a seedable Easy21 environment. Like the engine it wraps, it is owned
// by a single goroutine.
type Env struct {
	engine *game.Engine
	seed   int64
	logger *log.Logger
}

// Option configures an Env.
type Option func(*options)

type options struct {
	seed   int64
	logger *log.Logger
}

// WithSeed fixes the initial seed. Zero picks a random one.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger passes a logger through to the engine.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an environment with a round already dealt.
func New(opts ...Option) *Env {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	e := &Env{logger: o.logger}
	e.Seed(o.seed)
	return e
}

// Seed replaces the random source and deals a fresh round. A zero seed is
// replaced with a random one. The seed actually used is returned so that the
// episode can be replayed.
func (e *Env) Seed(seed int64) int64 {
	seed = randutil.Resolve(seed)
	var opts []game.Option
	if e.logger != nil {
		opts = append(opts, game.WithLogger(e.logger.With("seed", seed)))
	}
	e.engine = game.NewEngine(randutil.New(seed), opts...)
	e.seed = seed
	return seed
}

// SeedUsed returns the seed of the current random source.
func (e *Env) SeedUsed() int64 {
	return e.seed
}

// ActionSpace returns the two-action space: 0 sticks, 1 hits.
func (e *Env) ActionSpace() Discrete {
	return Discrete{N: game.NumActions}
}

// Reset deals a new round and returns its first observation.
func (e *Env) Reset() game.State {
	return e.engine.Reset()
}

// Step applies an encoded action (1 = hit, 0 = stick).
func (e *Env) Step(action int) (game.State, int, bool, Info, error) {
	if !e.ActionSpace().Contains(action) {
		return e.engine.State(), 0, e.engine.Terminal(), Info{}, fmt.Errorf("%w: %d", game.ErrInvalidAction, action)
	}
	s, reward, done, err := e.engine.Step(game.Action(action))
	return s, reward, done, Info{}, err
}

// State returns the current observation without acting.
func (e *Env) State() game.State {
	return e.engine.State()
}

// Round returns the full round, including the dealer's hidden cards. It is
// meant for display and recording, not for agents.
func (e *Env) Round() game.Round {
	return e.engine.Round()
}
