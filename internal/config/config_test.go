package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 12, cfg.Game.Map.Width)
	assert.Equal(t, 3, cfg.Game.Growth.IntervalTicks)
	assert.Equal(t, 1.0, cfg.RL.EpsilonStart)
	assert.Equal(t, 0.995, cfg.RL.EpsilonDecay)
	assert.Equal(t, 0.1, cfg.RL.EpsilonMin)
	assert.Equal(t, 0.95, cfg.RL.Gamma)
	assert.Equal(t, 10000, cfg.RL.BufferCapacity)
	assert.Equal(t, 32, cfg.RL.BatchSize)
	assert.Equal(t, 10, cfg.RL.TargetSyncEvery)

	require.NoError(t, Validate(cfg))
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("game:\n  map:\n    width: 8\n    height: 6\nrl:\n  batch_size: 16\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Game.Map.Width)
	assert.Equal(t, 6, cfg.Game.Map.Height)
	assert.Equal(t, 16, cfg.RL.BatchSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10000, cfg.RL.BufferCapacity)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Game.Map.Width)
}

func TestReload_RejectsBadState(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := reload(v)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Game.Map.Width)

	// An invalid edit must surface an error for Watch to log instead of
	// being applied.
	v.Set("rl.gamma", 5.0)
	_, err = reload(v)
	assert.ErrorContains(t, err, "rl.gamma")

	v.Set("rl.gamma", 0.9)
	v.Set("game.map.width", "not-a-number")
	_, err = reload(v)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Game.Map.Width = 0 }},
		{"zero growth interval", func(c *Config) { c.Game.Growth.IntervalTicks = 0 }},
		{"epsilon below min", func(c *Config) { c.RL.EpsilonStart = 0.01 }},
		{"batch larger than buffer", func(c *Config) { c.RL.BatchSize = 99999 }},
		{"one player", func(c *Config) { c.Training.Players = 1 }},
		{"zero sim speed", func(c *Config) { c.Training.SimSpeed = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
