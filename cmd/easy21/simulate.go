package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/easy21/internal/bot"
	"github.com/lox/easy21/internal/config"
	"github.com/lox/easy21/internal/history"
	"github.com/lox/easy21/internal/simulator"
)

// SimulateCmd runs a bot over many episodes. Zero-valued flags fall back to
// the simulate block of the config file.
type SimulateCmd struct {
	Episodes int    `short:"n" help:"Number of episodes"`
	Workers  int    `short:"w" help:"Parallel workers (default: GOMAXPROCS)"`
	Bot      string `short:"b" help:"Bot to run: random, threshold, dealer, hit or stick"`
	Seed     int64  `help:"Run seed (0 picks one at random)"`
	MaxSteps int    `help:"Abort an episode after this many steps"`
	History  string `type:"path" help:"Write every episode to this JSONL file"`
}

// merge overlays the flags that were set onto the config file values.
func (c *SimulateCmd) merge(cfg *config.SimulateConfig) config.SimulateConfig {
	out := *cfg
	if c.Episodes != 0 {
		out.Episodes = c.Episodes
	}
	if c.Workers != 0 {
		out.Workers = c.Workers
	}
	if c.Bot != "" {
		out.Bot = c.Bot
	}
	if c.Seed != 0 {
		out.Seed = c.Seed
	}
	if c.MaxSteps != 0 {
		out.MaxSteps = c.MaxSteps
	}
	if c.History != "" {
		out.History = c.History
	}
	return out
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}
	opts := c.merge(cfg.Simulate)

	factory, err := bot.Lookup(opts.Bot)
	if err != nil {
		return err
	}

	var rec *history.Recorder
	if opts.History != "" {
		rec = history.NewRecorder(0)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Episodes: opts.Episodes,
		Workers:  opts.Workers,
		Seed:     opts.Seed,
		MaxSteps: opts.MaxSteps,
		BotName:  opts.Bot,
		Bot:      factory,
		Logger:   logger,
		Recorder: rec,
	})
	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printResults(os.Stdout, opts.Bot, res)

	if rec != nil {
		if err := rec.WriteFile(opts.History); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		logger.Info("Wrote episode history", "path", opts.History, "episodes", rec.Len())
	}
	return nil
}

func printResults(w io.Writer, botName string, res *simulator.Result) {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s bot ===\n", botName)
	fmt.Fprintf(w, "Episodes: %d (seed %d)\n", stats.Episodes, res.Seed)
	fmt.Fprintf(w, "Total time: %v\n", res.Elapsed.Round(time.Millisecond))
	if secs := res.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "Performance: %.0f episodes/sec\n", float64(stats.Episodes)/secs)
	}

	fmt.Fprintf(w, "\n=== REWARD ===\n")
	fmt.Fprintf(w, "Mean: %.4f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)
	fmt.Fprintf(w, "Losses: %d (%.1f%%)\n", stats.Losses, stats.LossRate()*100)
	fmt.Fprintf(w, "Draws: %d (%.1f%%)\n", stats.Draws, stats.DrawRate()*100)
	fmt.Fprintf(w, "Player busts: %d, dealer busts: %d\n", stats.PlayerBusts, stats.DealerBusts)
	fmt.Fprintf(w, "Mean steps per episode: %.2f\n", stats.MeanSteps())
}
