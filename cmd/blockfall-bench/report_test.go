package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/blockfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportObserve(t *testing.T) {
	var r Report
	r.observe([]sim.Event{
		{Kind: sim.PlayChanged, PlayFrom: sim.Menu, PlayTo: sim.Playing},
		{Kind: sim.RowsCleared, Rows: 2},
		{Kind: sim.HardDropped, Rows: 12},
		{Kind: sim.PlayChanged, PlayFrom: sim.Playing, PlayTo: sim.Lose},
		{Kind: sim.PlayChanged, PlayFrom: sim.Lose, PlayTo: sim.Playing},
	})

	assert.Equal(t, 2, r.Games)
	assert.Equal(t, 1, r.Losses)
	assert.Equal(t, 2, r.RowsCleared)
	assert.Equal(t, 1, r.HardDrops)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:      time.Second,
		Frame:         time.Second / 60,
		Landing:       "per-unit",
		TotalFrames:   60,
		TotalTime:     10 * time.Millisecond,
		SimulatedTime: time.Second,
		Games:         1,
		RowsCleared:   3,
		Ticks: sim.Stats{Ticks: 2, Phases: []sim.PhaseStats{
			{Phase: sim.PlayerFalling, Count: 2, AvgDuration: time.Microsecond},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Rows Cleared:** 3")
	assert.Contains(t, out, "100x real time")
	assert.Contains(t, out, "**player-falling:** 2 ticks")
	assert.NotContains(t, out, "Traced Events")
	assert.NotContains(t, out, "GC Pause")
}

func TestBotRestartsEndedGames(t *testing.T) {
	b := newBot(rand.New(rand.NewPCG(1, 1)))

	assert.Equal(t, []sim.Intent{sim.StartGame}, b.intents(sim.Lose))
	assert.Equal(t, []sim.Intent{sim.StartGame}, b.intents(sim.Menu))

	for range 1000 {
		for _, in := range b.intents(sim.Playing) {
			assert.NotEqual(t, sim.StartGame, in)
		}
	}
}
