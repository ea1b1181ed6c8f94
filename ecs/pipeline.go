package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"
)

// PipelineStats provides statistics about pipeline execution.
type PipelineStats struct {
	SystemCount     int
	Runs            int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// worldBound is implemented by Query and Singleton fields.
type worldBound interface {
	Init(world *World)
}

type executable interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executable
	stats   *systemStatsInternal
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for run failures and timing.
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Pipeline executes an ordered list of systems once per Run.
type Pipeline struct {
	world   *World
	systems []registeredSystem
	frame   *Frame
	logger  *zap.Logger
	runs    int64
}

// NewPipeline creates a pipeline for the given world.
func NewPipeline(world *World, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		world:   world,
		systems: make([]registeredSystem, 0),
		frame:   newFrame(world),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register appends a system to the pipeline and initializes its Query and
// Singleton fields.
func (p *Pipeline) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	p.systems = append(p.systems, registeredSystem{
		system:  system,
		queries: p.initializeFields(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (p *Pipeline) initializeFields(system System) []executable {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []executable
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		bound, ok := field.Addr().Interface().(worldBound)
		if !ok {
			continue
		}
		bound.Init(p.world)

		if q, ok := bound.(executable); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Run executes every system once, in registration order. Before a system runs
// its queries are re-executed; after it returns the command buffer is flushed.
// The first failing system or flush aborts the run.
func (p *Pipeline) Run() error {
	if p.world.Closed() {
		return ErrWorldClosed
	}

	start := time.Now()
	for i := range p.systems {
		rs := &p.systems[i]
		if err := p.runSystem(rs); err != nil {
			p.logger.Error("system failed",
				zap.String("system", rs.stats.name),
				zap.Uint64("tick", p.frame.Tick),
				zap.Error(err))
			return fmt.Errorf("%s: %w", rs.stats.name, err)
		}
	}

	p.frame.Tick++
	p.runs++
	p.logger.Debug("pipeline run",
		zap.Uint64("tick", p.frame.Tick),
		zap.Int("entities", p.world.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (p *Pipeline) runSystem(rs *registeredSystem) error {
	start := time.Now()
	defer func() {
		rs.stats.record(time.Since(start))
	}()

	for _, q := range rs.queries {
		q.Execute()
	}

	if err := rs.system.Execute(p.frame); err != nil {
		p.frame.Commands.Reset()
		return err
	}
	return p.frame.Commands.Flush(p.world)
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

// RunEvery runs the pipeline on every tick of interval until ctx is cancelled.
// after is called with the completed tick count following each run. A tick that
// has started always runs to completion.
func (p *Pipeline) RunEvery(ctx context.Context, interval time.Duration, after func(tick uint64) error) error {
	if interval <= 0 {
		return fmt.Errorf("ecs: non-positive run interval %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := p.Run(); err != nil {
				return err
			}
			if after != nil {
				if err := after(p.frame.Tick); err != nil {
					return err
				}
			}
		}
	}
}

// World returns the world the pipeline runs against.
func (p *Pipeline) World() *World {
	return p.world
}

// Tick returns the number of completed runs.
func (p *Pipeline) Tick() uint64 {
	return p.frame.Tick
}

// Close tears down the world. The pipeline cannot run afterwards.
func (p *Pipeline) Close() {
	p.frame.Commands.Reset()
	p.world.Close()
}

// Stats returns statistics about system execution.
func (p *Pipeline) Stats() *PipelineStats {
	stats := &PipelineStats{
		SystemCount: len(p.systems),
		Runs:        p.runs,
		Systems:     make([]SystemStats, len(p.systems)),
	}

	var totalExecs int64
	for i, rs := range p.systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
