package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 10, c.Width)
	assert.Equal(t, 30, c.Height)
	assert.Equal(t, 20, c.PlayableRows)
	assert.Equal(t, 500*time.Millisecond, c.Tick.Base)
	assert.Less(t, c.Tick.Cascade, c.Tick.Base)
	assert.Less(t, c.Tick.SoftDrop, c.Tick.Cascade)
	assert.Equal(t, board.PerUnit, c.LandingPolicy())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := config.Parse([]byte(`
tick:
  base: 250ms
repeat:
  rate: 30ms
landing: rigid
win_rows: 40
seed: 99
`))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, c.Tick.Base)
	assert.Equal(t, 100*time.Millisecond, c.Tick.Cascade, "unset keys keep defaults")
	assert.Equal(t, 30*time.Millisecond, c.Repeat.Rate)
	assert.Equal(t, board.Rigid, c.LandingPolicy())
	assert.Equal(t, 40, c.WinRows)
	assert.Equal(t, uint64(99), c.Seed)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"narrow", "width: 2"},
		{"playable into spawn rows", "playable_rows: 21"},
		{"short", "height: 21"},
		{"zero tick", "tick:\n  cascade: 0s"},
		{"negative repeat", "repeat:\n  initial: -1s"},
		{"unknown landing", "landing: sticky"},
		{"negative win", "win_rows: -1"},
		{"not yaml", "width: [1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadNamesTheFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("landing: wobbly\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tuning.yaml")

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := config.Default()
	c.WinRows = 12
	raw, err := c.Marshal()
	require.NoError(t, err)

	back, err := config.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
