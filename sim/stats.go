package sim

import "time"

// Stats summarizes how long ticks took, split by the flow phase they ran in.
type Stats struct {
	Ticks  int64
	Phases []PhaseStats
}

// PhaseStats holds execution timing for ticks of one flow phase.
type PhaseStats struct {
	Phase         FlowState
	Count         int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type phaseTiming struct {
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

type tickStats [CascadeFalling + 1]phaseTiming

func (t *tickStats) record(phase FlowState, d time.Duration) {
	if int(phase) >= len(t) {
		return
	}
	p := &t[phase]
	if p.count == 0 || d < p.min {
		p.min = d
	}
	if d > p.max {
		p.max = d
	}
	p.count++
	p.total += d
	p.last = d
}

func (t *tickStats) snapshot() Stats {
	var out Stats
	for phase := PlayerFalling; phase <= CascadeFalling; phase++ {
		p := t[phase]
		var avg time.Duration
		if p.count > 0 {
			avg = p.total / time.Duration(p.count)
		}
		out.Phases = append(out.Phases, PhaseStats{
			Phase:         phase,
			Count:         p.count,
			MinDuration:   p.min,
			MaxDuration:   p.max,
			AvgDuration:   avg,
			LastDuration:  p.last,
			TotalDuration: p.total,
		})
		out.Ticks += p.count
	}
	return out
}
