package main

import (
	"time"

	"github.com/lox/easy21/internal/server"
)

// ServeCmd runs the websocket environment server.
type ServeCmd struct {
	Addr        string        `help:"Listen address (default from config, localhost:8021)"`
	IdleTimeout time.Duration `help:"Close connections idle for this long"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	addr := cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}
	idle, err := cfg.Server.Idle()
	if err != nil {
		return err
	}
	if c.IdleTimeout > 0 {
		idle = c.IdleTimeout
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	s := server.New(server.Config{
		Addr:        addr,
		IdleTimeout: idle,
		Logger:      logger,
	})
	return s.Start(ctx)
}
