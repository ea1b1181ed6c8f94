package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Scenario ScenarioConfig `toml:"scenario"`
	Run      RunConfig      `toml:"run"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ScenarioConfig struct {
	EntityCount   int   `toml:"entity_count"`
	RespawnTicks  int   `toml:"respawn_ticks"`
	AttackSpeed   int   `toml:"attack_speed"`   // cells per tick
	SteerInterval int   `toml:"steer_interval"` // ticks per heading
	ArenaWidth    int32 `toml:"arena_width"`
	ArenaHeight   int32 `toml:"arena_height"`
}

type RunConfig struct {
	Ticks    int           `toml:"ticks"`    // 0 = run for Duration
	Duration time.Duration `toml:"duration"` // wall clock budget when Ticks is 0
	Interval time.Duration `toml:"interval"` // tick pacing in watch mode
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scenario: ScenarioConfig{
			EntityCount:   10000,
			RespawnTicks:  16,
			AttackSpeed:   4,
			SteerInterval: 8,
			ArenaWidth:    120,
			ArenaHeight:   40,
		},
		Run: RunConfig{
			Ticks:    0,
			Duration: 10 * time.Second,
			Interval: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects settings the scenario cannot run with.
func (c *Config) Validate() error {
	var errs []error
	s := c.Scenario
	if s.EntityCount < 0 {
		errs = append(errs, fmt.Errorf("scenario.entity_count must not be negative, got %d", s.EntityCount))
	}
	if s.RespawnTicks < 1 {
		errs = append(errs, fmt.Errorf("scenario.respawn_ticks must be at least 1, got %d", s.RespawnTicks))
	}
	if s.AttackSpeed < 1 {
		errs = append(errs, fmt.Errorf("scenario.attack_speed must be at least 1, got %d", s.AttackSpeed))
	}
	if s.SteerInterval < 1 {
		errs = append(errs, fmt.Errorf("scenario.steer_interval must be at least 1, got %d", s.SteerInterval))
	}
	if s.ArenaWidth < 2 || s.ArenaHeight < 2 {
		errs = append(errs, fmt.Errorf("scenario arena must be at least 2x2, got %dx%d", s.ArenaWidth, s.ArenaHeight))
	}
	if c.Run.Ticks < 0 {
		errs = append(errs, fmt.Errorf("run.ticks must not be negative, got %d", c.Run.Ticks))
	}
	if c.Run.Interval <= 0 {
		errs = append(errs, fmt.Errorf("run.interval must be positive, got %s", c.Run.Interval))
	}
	if c.Run.Ticks == 0 && c.Run.Duration <= 0 {
		errs = append(errs, errors.New("run needs either ticks or a positive duration"))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}
