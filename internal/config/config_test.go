package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/procsim/pkg/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultSimConfig(t *testing.T) {
	cfg := DefaultSimConfig()
	require.NoError(t, cfg.Validate())
	kind, err := cfg.PolicyKind()
	require.NoError(t, err)
	assert.Equal(t, model.PolicyRoundRobin, kind)
	assert.Equal(t, 15*time.Second, cfg.IOWait)
	assert.Zero(t, cfg.PaceUnit)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overlay(t *testing.T) {
	path := writeConfig(t, `
simulation:
  policy: priority
  io_wait: 250ms
  max_ticks: 1000
server:
  addr: ":9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "priority", cfg.Simulation.Policy)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.IOWait)
	assert.Equal(t, 1000, cfg.Simulation.MaxTicks)
	assert.Equal(t, 5.0, cfg.Simulation.QuantumSlice, "unset keys keep defaults")
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "simulation: ["))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "simulation:\n  policy: lottery\n"))
	assert.ErrorContains(t, err, "unknown policy")
}

func TestSimConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{"zero slice", func(c *SimConfig) { c.QuantumSlice = 0 }},
		{"negative priority quantum", func(c *SimConfig) { c.PriorityQuantum = -1 }},
		{"negative io wait", func(c *SimConfig) { c.IOWait = -time.Second }},
		{"negative pace", func(c *SimConfig) { c.PaceUnit = -time.Second }},
		{"negative ticks", func(c *SimConfig) { c.MaxTicks = -3 }},
		{"bad policy", func(c *SimConfig) { c.Policy = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
