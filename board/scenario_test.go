package board_test

import (
	"strings"
	"testing"

	"github.com/plus3/blockfall/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type scenario struct {
	name  string
	parts map[string]string
}

func loadScenarios(t *testing.T, path string) []scenario {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var out []scenario
	index := make(map[string]int)
	for _, f := range archive.Files {
		name, part, ok := strings.Cut(f.Name, "/")
		require.True(t, ok, "file %q is not <case>/<part>", f.Name)
		i, seen := index[name]
		if !seen {
			i = len(out)
			index[name] = i
			out = append(out, scenario{name: name, parts: make(map[string]string)})
		}
		out[i].parts[part] = string(f.Data)
	}
	return out
}

func runOp(t *testing.T, b *board.Board, op string) {
	t.Helper()
	fields := strings.Fields(op)
	switch fields[0] {
	case "fall":
		_, err := b.Fall()
		require.NoError(t, err)
	case "settle":
		for i := 0; ; i++ {
			require.Less(t, i, b.Height(), "settle did not converge")
			moved, err := b.Fall()
			require.NoError(t, err)
			if !moved {
				return
			}
		}
	case "clear":
		_, err := b.ClearRows()
		require.NoError(t, err)
	case "drop":
		_, err := b.HardDrop()
		require.NoError(t, err)
	case "shift":
		require.Len(t, fields, 2)
		dir := map[string]board.Direction{"left": board.Left, "right": board.Right, "down": board.Down}[fields[1]]
		require.NotZero(t, dir, "unknown direction %q", fields[1])
		_, err := b.Shift(dir)
		require.NoError(t, err)
	default:
		t.Fatalf("unknown op %q", op)
	}
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t, "testdata/scenarios.txtar") {
		t.Run(sc.name, func(t *testing.T) {
			policy, err := board.ParseLandingPolicy(strings.TrimSpace(sc.parts["policy"]))
			require.NoError(t, err)

			b := board.New(board.Width, board.Height, board.WithLandingPolicy(policy))
			require.NoError(t, b.LoadText(sc.parts["board"]))

			for _, op := range strings.Split(strings.TrimSpace(sc.parts["ops"]), "\n") {
				runOp(t, b, strings.TrimSpace(op))
			}

			want := sc.parts["want"]
			rows := strings.Count(want, "\n")
			assert.Equal(t, want, b.Text(rows))
			assertConsistent(t, b)
		})
	}
}

// assertConsistent checks that every unit sits on a cell holding its ID and
// that no cell is claimed twice or left without a unit.
func assertConsistent(t *testing.T, b *board.Board) {
	t.Helper()
	seen := make(map[board.Coord]board.Handle)
	for h, u := range b.Units() {
		prev, dup := seen[u.Coord]
		assert.False(t, dup, "units %d and %d share %s", prev, h, u.Coord)
		seen[u.Coord] = h

		cell, ok := b.Grid().Get(u.Coord)
		require.True(t, ok)
		assert.True(t, cell.Occupied, "cell under unit %d is empty", h)
		assert.Equal(t, u.ID, cell.Owner, "cell under unit %d", h)
	}
	assert.Equal(t, len(seen), b.Grid().Occupied())
}
