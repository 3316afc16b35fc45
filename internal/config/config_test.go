package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "easy21.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

simulate {
  episodes = 250
  workers  = 4
  bot      = "stick"
  history  = "episodes.jsonl"
}

train {
  algorithm = "sarsa"
  lambda    = 0.3
}

server {
  address = ":9000"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250, cfg.Simulate.Episodes)
	assert.Equal(t, 4, cfg.Simulate.Workers)
	assert.Equal(t, "stick", cfg.Simulate.Bot)
	assert.Equal(t, "episodes.jsonl", cfg.Simulate.History)
	assert.Equal(t, 1000, cfg.Simulate.MaxSteps)

	assert.Equal(t, AlgorithmSarsa, cfg.Train.Algorithm)
	assert.InDelta(t, 0.3, cfg.Train.Lambda, 1e-9)
	assert.InDelta(t, 100, cfg.Train.N0, 1e-9)
	assert.Equal(t, 500000, cfg.Train.Episodes)

	assert.Equal(t, ":9000", cfg.Server.Address)
	idle, err := cfg.Server.Idle()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, idle)
}

func TestLoadWithoutBlocks(t *testing.T) {
	cfg, err := Load(writeConfig(t, `log_level = "warn"`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.LogLevel = "warn"
	assert.Equal(t, want, cfg)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `simulate {`, "failed to parse"},
		{"unknown attribute", `colour = "red"`, "failed to decode"},
		{"unknown bot", `simulate { bot = "card-counter" }`, "card-counter"},
		{"negative workers", `simulate { workers = -1 }`, "workers"},
		{"unknown algorithm", `train { algorithm = "q" }`, "algorithm"},
		{"lambda range", `train { lambda = 1.5 }`, "lambda"},
		{"idle timeout", `server { idle_timeout = "soon" }`, "idle_timeout"},
		{"zero idle timeout", `server { idle_timeout = "0s" }`, "idle_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
