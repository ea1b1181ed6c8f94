package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/skirmish/battle"
	"github.com/plus3/skirmish/ecs"
)

type Report struct {
	// Configuration
	Entities int
	Ticks    int
	Duration time.Duration

	// Results
	SetupTime      time.Duration
	CleanupTime    time.Duration
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Pipeline       *ecs.PipelineStats
	World          ecs.WorldStats
	Battle         battle.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// TicksPerSecond is the sustained update rate over the whole run.
func (r *Report) TicksPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalUpdates) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Skirmish Benchmark Report

## Configuration
- **Initial Units:** {{.Entities}}
{{- if .Ticks}}
- **Ticks:** {{.Ticks}}
{{- else}}
- **Run Duration:** {{.Duration}}
{{- end}}

## Performance Results
- **Setup Time:** {{.SetupTime}}
- **Cleanup Time:** {{.CleanupTime}}
- **Total Updates:** {{.TotalUpdates}}
- **Total Run Time:** {{.TotalTime}}
- **Ticks/sec:** {{printf "%.1f" .TicksPerSecond}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{if .Pipeline}}
## Systems
| System | Runs | Avg | Min | Max | Total |
|---|---|---|---|---|---|
{{- range .Pipeline.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{- end}}
{{end}}
## Battle
- Spawned: {{.Battle.Spawned}}
- Respawned: {{.Battle.Respawned}}
- Killed: {{.Battle.Killed}}
- Attacks Issued: {{.Battle.AttacksIssued}}
- Hits: {{.Battle.Hits}}
- Misses: {{.Battle.Misses}}

## World (before cleanup)
- Live Entities: {{.World.EntityCount}}
{{- range .World.Pools}}
- {{.Type}}{{if .Tag}} (tag){{end}}: {{.Count}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} ({{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MiB)
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ nsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs }}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"nsub": func(a, b uint64) string {
			return time.Duration(a - b).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
