package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/skirmish/battle"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/internal/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := loadConfig(options{})
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("reads the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.toml")
		require.NoError(t, os.WriteFile(path, []byte("[scenario]\nentity_count = 42\n\n[run]\nticks = 7\n"), 0o644))

		cfg, err := loadConfig(options{configPath: path})
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Scenario.EntityCount)
		assert.Equal(t, 7, cfg.Run.Ticks)
		assert.Equal(t, 16, cfg.Scenario.RespawnTicks)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(options{configPath: filepath.Join(t.TempDir(), "nope.toml")})
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			logger, err := newLogger(config.LoggingConfig{Level: "warn", Format: format})
			require.NoError(t, err)
			assert.False(t, logger.Core().Enabled(-1))
			assert.True(t, logger.Core().Enabled(1))
		})
	}
}

func TestParamsFrom(t *testing.T) {
	params := paramsFrom(config.ScenarioConfig{
		RespawnTicks:  3,
		AttackSpeed:   2,
		SteerInterval: 5,
		ArenaWidth:    10,
		ArenaHeight:   6,
	})

	assert.Equal(t, 3, params.RespawnTicks)
	assert.Equal(t, 2, params.AttackSpeed)
	assert.Equal(t, 5, params.SteerInterval)
	assert.Equal(t, battle.Arena{Width: 10, Height: 6}, params.Arena)
	assert.NotNil(t, params.RNG)
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Entities:     100,
		Ticks:        20,
		TotalUpdates: 20,
		TotalTime:    time.Second,
		Pipeline: &ecs.PipelineStats{
			Systems: []ecs.SystemStats{{Name: "battle.AttackSystem", ExecutionCount: 20}},
		},
		Battle: battle.Stats{Spawned: 100, Killed: 4},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Initial Units:** 100")
	assert.Contains(t, out, "**Ticks:** 20")
	assert.Contains(t, out, "**Ticks/sec:** 20.0")
	assert.Contains(t, out, "| battle.AttackSystem | 20 |")
	assert.Contains(t, out, "- Spawned: 100")
	assert.Contains(t, out, "- Killed: 4")
	assert.NotContains(t, out, "GC Pause Durations")
}
