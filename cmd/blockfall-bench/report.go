package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/sim"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Frame    time.Duration
	Seed     uint64
	Landing  string

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	SimulatedTime  time.Duration
	UpdateTime     Stats
	Ticks          sim.Stats
	Games          int
	Wins           int
	Losses         int
	RowsCleared    int
	Score          int
	HardDrops      int
	TraceEvents    int64
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

// observe counts games and clears from one frame of events.
func (r *Report) observe(events []sim.Event) {
	for _, e := range events {
		switch e.Kind {
		case sim.PlayChanged:
			switch e.PlayTo {
			case sim.Playing:
				r.Games++
			case sim.Win:
				r.Wins++
			case sim.Lose:
				r.Losses++
			}
		case sim.RowsCleared:
			r.RowsCleared += e.Rows
		case sim.HardDropped:
			r.HardDrops++
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Frame Step:** {{.Frame}}
- **Seed:** {{.Seed}}
- **Landing:** {{.Landing}}

## Play
- **Games Started:** {{.Games}} ({{.Wins}} won, {{.Losses}} lost)
- **Rows Cleared:** {{.RowsCleared}}
- **Score:** {{.Score}}
- **Hard Drops:** {{.HardDrops}}
{{- if .TraceEvents}}
- **Traced Events:** {{.TraceEvents}}
{{- end}}

## Performance Results
- **Total Frames:** {{.TotalFrames}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}} ({{speedup .SimulatedTime .TotalTime}}x real time)
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Ticks:** {{.Ticks.Ticks}}
{{- range .Ticks.Phases}}
  - **{{.Phase}}:** {{.Count}} ticks, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"speedup": func(simulated, wall time.Duration) string {
			if wall <= 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.0f", float64(simulated)/float64(wall))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
