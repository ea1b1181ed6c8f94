package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/plus3/skirmish/battle"
	"github.com/plus3/skirmish/internal/config"
	"github.com/plus3/skirmish/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configPath     string
	entities       int
	ticks          int
	duration       time.Duration
	interval       time.Duration
	logLevel       string
	profileMode    string
	dumpPath       string
	watch          bool
	gcPauseMetrics bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML config file.")
	flag.IntVar(&opts.entities, "entities", 0, "The initial number of units to create.")
	flag.IntVar(&opts.ticks, "ticks", 0, "Run exactly this many ticks instead of a fixed duration.")
	flag.DurationVar(&opts.duration, "duration", 0, "The total duration the benchmark should run for.")
	flag.DurationVar(&opts.interval, "interval", 0, "Tick pacing in watch mode.")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error).")
	flag.StringVar(&opts.profileMode, "profile", "", "Write a profile to the working directory: cpu or mem.")
	flag.StringVar(&opts.dumpPath, "dump", "", "Write a YAML snapshot of the final state to this file.")
	flag.BoolVar(&opts.watch, "watch", false, "Render the battle in the terminal instead of benchmarking.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "skirmish-bench: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	switch opts.profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profileMode)
	}

	if opts.watch {
		return watch(cfg, logger)
	}
	return bench(cfg, opts, logger)
}

// loadConfig layers explicitly set flags over the config file over defaults.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entities":
			cfg.Scenario.EntityCount = opts.entities
		case "ticks":
			cfg.Run.Ticks = opts.ticks
		case "duration":
			cfg.Run.Duration = opts.duration
		case "interval":
			cfg.Run.Interval = opts.interval
		case "log-level":
			cfg.Logging.Level = opts.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func paramsFrom(cfg config.ScenarioConfig) battle.Params {
	params := battle.DefaultParams()
	params.RespawnTicks = cfg.RespawnTicks
	params.AttackSpeed = cfg.AttackSpeed
	params.SteerInterval = cfg.SteerInterval
	params.Arena = battle.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight}
	return params
}

func bench(cfg *config.Config, opts options, logger *zap.Logger) error {
	params := paramsFrom(cfg.Scenario)
	fb := battle.NewFramebuffer(int(params.Arena.Width), int(params.Arena.Height))
	scenario := battle.NewContext(params, fb, logger)

	report := &Report{
		Entities:       cfg.Scenario.EntityCount,
		Ticks:          cfg.Run.Ticks,
		Duration:       cfg.Run.Duration,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, max(cfg.Run.Ticks, 1024)),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	setupStart := time.Now()
	if err := scenario.Setup(cfg.Scenario.EntityCount); err != nil {
		return err
	}
	report.SetupTime = time.Since(setupStart)

	ctx := context.Background()
	if cfg.Run.Ticks == 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Run.Duration)
		defer cancel()
		logger.Info("running", zap.Duration("duration", cfg.Run.Duration))
	} else {
		logger.Info("running", zap.Int("ticks", cfg.Run.Ticks))
	}

	startTime := time.Now()
	tick := 0
Loop:
	for cfg.Run.Ticks == 0 || tick < cfg.Run.Ticks {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		if err := scenario.Run(tick); err != nil {
			return err
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		tick++
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(tick)
	report.UpdateTime.Finalize()
	report.Pipeline = scenario.Pipeline().Stats()
	report.World = scenario.World().CollectStats()
	report.Battle = scenario.Stats()

	if opts.dumpPath != "" {
		if err := dumpSnapshot(opts.dumpPath, scenario.Snapshot()); err != nil {
			return err
		}
		logger.Info("snapshot written", zap.String("path", opts.dumpPath))
	}

	cleanupStart := time.Now()
	scenario.Cleanup()
	report.CleanupTime = time.Since(cleanupStart)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Skirmish Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

func dumpSnapshot(path string, snap battle.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := snap.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func watch(cfg *config.Config, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// the arena follows the terminal, minus the status line
	w, h := screen.Size()
	params := paramsFrom(cfg.Scenario)
	params.Arena = battle.Arena{Width: int32(w), Height: int32(max(h-1, 2))}

	// anything below error would scribble over the screen
	sink := render.NewScreenSink(screen)
	scenario := battle.NewContext(params, sink, logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel)))
	if err := scenario.Setup(cfg.Scenario.EntityCount); err != nil {
		return err
	}
	defer scenario.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					return
				}
			}
		}
	}()

	return scenario.Pipeline().RunEvery(ctx, cfg.Run.Interval, func(tick uint64) error {
		s := scenario.Stats()
		sink.Status(fmt.Sprintf(" tick %d  units %d  attacks %d  hits %d  kills %d  respawns %d  [q] quit",
			tick, cfg.Scenario.EntityCount, s.AttacksIssued, s.Hits, s.Killed, s.Respawned))
		sink.Present()

		if cfg.Run.Ticks > 0 && tick >= uint64(cfg.Run.Ticks) {
			cancel()
		}
		return nil
	})
}
