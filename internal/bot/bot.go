// Package bot provides fixed Easy21 policies used as baselines, opponents for
// comparison and demo drivers.
package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/easy21/internal/game"
)

// Bot chooses an action from an observation.
type Bot interface {
	Act(s game.State) game.Action
}

// Func adapts a plain function to the Bot interface.
type Func func(s game.State) game.Action

// Act calls f(s).
func (f Func) Act(s game.State) game.Action {
	return f(s)
}

// Factory builds a bot for one episode. The source is private to that episode.
type Factory func(src game.Source) Bot

var registry = map[string]Factory{
	"random": func(src game.Source) Bot { return NewRandBot(src) },
	"threshold": func(game.Source) Bot {
		return NewThresholdBot(DealerStickSum)
	},
	"hit":   func(game.Source) Bot { return Always(game.Hit) },
	"stick": func(game.Source) Bot { return Always(game.Stick) },
}

func init() {
	registry["dealer"] = registry["threshold"]
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// New is Lookup followed by a call to the factory.
func New(name string, src game.Source) (Bot, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(src), nil
}

// Names lists the registered bot names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
