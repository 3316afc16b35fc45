package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/config"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/learn"
	"github.com/lox/easy21/internal/plot"
	"github.com/lox/easy21/internal/randutil"
	"github.com/lox/easy21/internal/simulator"
)

// TrainCmd learns a policy and optionally plots it. Zero-valued flags fall
// back to the train block of the config file.
type TrainCmd struct {
	Algorithm string   `short:"a" help:"Learning algorithm: mc or sarsa"`
	Episodes  int      `short:"n" help:"Training episodes"`
	N0        float64  `name:"n0" help:"Exploration constant"`
	Lambda    *float64 `help:"Sarsa trace decay in [0, 1]"`
	Seed      int64    `help:"Training seed (0 picks one at random)"`
	Plot      string   `type:"path" help:"Write the learned value function to this image (png, svg or pdf)"`
	Curve     string   `type:"path" help:"Write the learning curve against a Monte Carlo reference to this image"`

	CurveEvery        int `default:"1000" help:"Episodes between learning curve samples"`
	ReferenceEpisodes int `default:"1000000" help:"Monte Carlo episodes for the learning curve reference"`
	Evaluate          int `default:"10000" help:"Episodes to evaluate the greedy policy over (0 to skip)"`
}

type trainer interface {
	Train(ctx context.Context) (*learn.QTable, error)
}

func (c *TrainCmd) merge(cfg *config.TrainConfig) config.TrainConfig {
	out := *cfg
	if c.Algorithm != "" {
		out.Algorithm = c.Algorithm
	}
	if c.Episodes != 0 {
		out.Episodes = c.Episodes
	}
	if c.N0 != 0 {
		out.N0 = c.N0
	}
	if c.Lambda != nil {
		out.Lambda = *c.Lambda
	}
	if c.Seed != 0 {
		out.Seed = c.Seed
	}
	if c.Plot != "" {
		out.Plot = c.Plot
	}
	if c.Curve != "" {
		out.Curve = c.Curve
	}
	return out
}

func newTrainer(opts config.TrainConfig, logger *log.Logger, progress learn.Progress) (trainer, error) {
	logEvery := max(opts.Episodes/10, 1)
	switch opts.Algorithm {
	case config.AlgorithmMonteCarlo:
		return learn.MonteCarlo{
			Episodes: opts.Episodes,
			N0:       opts.N0,
			Seed:     opts.Seed,
			LogEvery: logEvery,
			Logger:   logger,
			Progress: progress,
		}, nil
	case config.AlgorithmSarsa:
		if opts.Lambda < 0 || opts.Lambda > 1 {
			return nil, fmt.Errorf("lambda must be within [0, 1], got %v", opts.Lambda)
		}
		return learn.Sarsa{
			Episodes: opts.Episodes,
			Lambda:   opts.Lambda,
			N0:       opts.N0,
			Seed:     opts.Seed,
			LogEvery: logEvery,
			Logger:   logger,
			Progress: progress,
		}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q (want %s or %s)", opts.Algorithm, config.AlgorithmMonteCarlo, config.AlgorithmSarsa)
	}
}

func (c *TrainCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	opts := c.merge(cfg.Train)
	opts.Seed = randutil.Resolve(opts.Seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	var (
		reference *learn.QTable
		curve     plot.Series
	)
	if opts.Curve != "" {
		logger.Info("Training Monte Carlo reference", "episodes", c.ReferenceEpisodes)
		reference, err = learn.MonteCarlo{
			Episodes: c.ReferenceEpisodes,
			N0:       opts.N0,
			Seed:     randutil.Derive(opts.Seed, -2),
			Logger:   logger,
		}.Train(ctx)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		curve.Name = algorithmLabel(opts)
	}

	every := max(c.CurveEvery, 1)
	progress := func(ep int, q *learn.QTable) {
		if reference != nil && ep%every == 0 {
			curve.X = append(curve.X, float64(ep))
			curve.Y = append(curve.Y, learn.MeanSquaredError(q, reference))
		}
	}

	t, err := newTrainer(opts, logger, progress)
	if err != nil {
		return err
	}
	logger.Info("Training", "algorithm", algorithmLabel(opts), "episodes", opts.Episodes, "seed", opts.Seed)
	q, err := t.Train(ctx)
	if err != nil {
		return err
	}

	printPolicy(os.Stdout, q)

	if c.Evaluate > 0 {
		if err := evaluate(ctx, os.Stdout, q, c.Evaluate, opts.Seed, logger); err != nil {
			return err
		}
	}
	if opts.Plot != "" {
		if err := plot.ValueFunction(q, opts.Plot); err != nil {
			return fmt.Errorf("plotting value function: %w", err)
		}
		logger.Info("Wrote value function plot", "path", opts.Plot)
	}
	if opts.Curve != "" {
		if err := plot.Lines(opts.Curve, "Learning curve", "Episode", "Mean squared error", curve); err != nil {
			return fmt.Errorf("plotting learning curve: %w", err)
		}
		logger.Info("Wrote learning curve", "path", opts.Curve, "points", len(curve.X))
	}
	return nil
}

func algorithmLabel(opts config.TrainConfig) string {
	if opts.Algorithm == config.AlgorithmSarsa {
		return fmt.Sprintf("sarsa(%.2g)", opts.Lambda)
	}
	return opts.Algorithm
}

// evaluate plays the greedy policy through the simulator.
func evaluate(ctx context.Context, w io.Writer, q *learn.QTable, episodes int, seed int64, logger *log.Logger) error {
	greedy := q.Greedy()
	res, err := simulator.New(simulator.Config{
		Episodes: episodes,
		Seed:     randutil.Derive(seed, -3),
		BotName:  "greedy",
		Bot:      func(game.Source) bot.Bot { return greedy },
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("evaluating policy: %w", err)
	}
	low, high := res.Stats.ConfidenceInterval95()
	fmt.Fprintf(w, "\nGreedy policy over %d episodes: mean reward %.4f, 95%% CI [%.4f, %.4f], win rate %.1f%%\n",
		res.Stats.Episodes, res.Stats.Mean(), low, high, res.Stats.WinRate()*100)
	return nil
}

// printPolicy prints the greedy action for every state, player sums down
// and dealer cards across.
func printPolicy(w io.Writer, q *learn.QTable) {
	var b strings.Builder
	b.WriteString("     ")
	for d := 1; d <= learn.DealerCards; d++ {
		fmt.Fprintf(&b, "%3d", d)
	}
	b.WriteString("\n")
	for p := learn.PlayerSums; p >= 1; p-- {
		fmt.Fprintf(&b, "%4d ", p)
		for d := 1; d <= learn.DealerCards; d++ {
			mark := "S"
			if q.Best(game.State{PlayerSum: p, DealerCard: d}) == game.Hit {
				mark = "H"
			}
			fmt.Fprintf(&b, "%3s", mark)
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}
