package trace_test

import (
	"bytes"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	events := []sim.Event{
		{Kind: sim.PlayChanged, PlayFrom: sim.Menu, PlayTo: sim.Playing},
		{Kind: sim.UnitSpawned, Tick: 1, Handle: 3, Unit: board.Unit{ID: 2, Coord: board.Coord{X: 4, Y: 20}, Kind: piece.T, Controlled: true}},
		{Kind: sim.UnitMoved, Tick: 1, Handle: 3, Unit: board.Unit{ID: 2, Coord: board.Coord{X: 4, Y: 19}, Kind: piece.T, Controlled: true}, From: board.Coord{X: 4, Y: 20}},
		{Kind: sim.RowsCleared, Tick: 9, Rows: 2},
		{Kind: sim.FlowChanged, Tick: 9, FlowFrom: sim.CheckingRows, FlowTo: sim.CascadeFalling},
	}

	var buf bytes.Buffer
	w, err := trace.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write(events[:2]))
	require.NoError(t, w.Write(events[2:]))
	assert.Equal(t, int64(len(events)), w.Count())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")
	assert.Error(t, w.Write(events))

	var got []sim.Event
	for e, err := range trace.Read(&buf) {
		require.NoError(t, err)
		got = append(got, e)
	}
	assert.Equal(t, events, got)
}

func TestLinesAreReadableJSON(t *testing.T) {
	var buf bytes.Buffer
	w, err := trace.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Write([]sim.Event{{Kind: sim.RowsCleared, Tick: 4, Rows: 1}}))
	require.NoError(t, w.Close())

	dec, err := zstd.NewReader(&buf)
	require.NoError(t, err)
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"rows-cleared","tick":4,"rows":1}`+"\n", string(raw))
}

func TestReadRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte("{\"kind\":\"rows-cleared\"}\n{\"kind\":\"teleported\"}\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	var n int
	var last error
	for _, err := range trace.Read(&buf) {
		if err != nil {
			last = err
			break
		}
		n++
	}
	assert.Equal(t, 1, n)
	assert.ErrorContains(t, last, "line 2")
}

func TestSessionTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "session.jsonl.zst")
	w, err := trace.Create(path)
	require.NoError(t, err)

	s, err := sim.New(config.Default(), sim.WithLayout("AAAAAAAAAA"), sim.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	require.NoError(t, s.Apply(sim.StartGame))
	for range 200 {
		require.NoError(t, s.Step())
		require.NoError(t, w.Write(s.Drain()))
		if s.Lines() > 0 {
			break
		}
	}
	require.NoError(t, w.Close())

	got, err := trace.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, sim.PlayChanged, got[0].Kind)

	sb := sim.Scoreboard{PerRow: 100}
	sb.Observe(got)
	assert.Equal(t, 100, sb.Score)
}
