package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/easy21/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" default:"easy21.hcl" help:"HCL configuration file (ignored when missing)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides the config file)"`
}

// setup loads the configuration and builds the root logger.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Demo     DemoCmd          `cmd:"" help:"Play random rounds, printing every state and reward"`
	Play     PlayCmd          `cmd:"" help:"Play Easy21 interactively in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run a bot over many episodes and report statistics"`
	Train    TrainCmd         `cmd:"" help:"Learn a policy with Monte Carlo control or Sarsa(lambda)"`
	Serve    ServeCmd         `cmd:"" help:"Serve environments to remote harnesses over a websocket"`
	Replay   ReplayCmd        `cmd:"" help:"Check that recorded episodes replay from their seeds"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("easy21"),
		kong.Description("Easy21 card game environment for reinforcement learning"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
