package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/history"
)

// ReplayCmd replays a history file and reports divergences.
type ReplayCmd struct {
	File  string `arg:"" type:"existingfile" help:"JSONL episode history written by simulate"`
	Limit int    `help:"Maximum number of episodes to replay (0 = all)"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	_, logger, err := g.setup()
	if err != nil {
		return err
	}
	episodes, err := history.Load(c.File)
	if err != nil {
		return err
	}
	return replayEpisodes(os.Stdout, logger, episodes, c.Limit)
}

func replayEpisodes(w io.Writer, logger *log.Logger, episodes []history.Episode, limit int) error {
	if len(episodes) == 0 {
		return errors.New("no episodes to replay")
	}
	if limit <= 0 || limit > len(episodes) {
		limit = len(episodes)
	}

	failed := 0
	for _, ep := range episodes[:limit] {
		if err := history.Replay(ep); err != nil {
			failed++
			logger.Error("Replay failed", "episode", ep.ID, "seed", ep.Seed, "error", err)
		}
	}

	fmt.Fprintf(w, "Replayed %d episodes: %d ok, %d diverged\n", limit, limit-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d episodes diverged", failed, limit)
	}
	return nil
}
