package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/easy21/internal/env"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/randutil"
)

// DemoCmd plays rounds with uniformly random actions.
type DemoCmd struct {
	Episodes int   `default:"1" help:"Number of rounds to play"`
	Seed     int64 `help:"Environment seed (0 picks one at random)"`
}

func (c *DemoCmd) Run(g *Globals) error {
	_, logger, err := g.setup()
	if err != nil {
		return err
	}
	e := env.New(env.WithSeed(c.Seed), env.WithLogger(logger))
	src := randutil.New(randutil.Derive(e.SeedUsed(), -1))
	logger.Info("Playing random rounds", "episodes", c.Episodes, "seed", e.SeedUsed())
	return runDemo(os.Stdout, e, src, c.Episodes)
}

// runDemo prints the opening state of each round followed by every
// (state, reward) pair until the round ends.
func runDemo(w io.Writer, e *env.Env, src game.Source, episodes int) error {
	for i := 0; i < episodes; i++ {
		s := e.Reset()
		fmt.Fprintln(w, s)
		for done := false; !done; {
			var (
				reward int
				err    error
			)
			s, reward, done, _, err = e.Step(e.ActionSpace().Sample(src))
			if err != nil {
				return err
			}
			fmt.Fprintln(w, s, reward)
		}
	}
	return nil
}
