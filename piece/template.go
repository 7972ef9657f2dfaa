package piece

// Offset is a cell offset relative to a template's base. Y grows upward.
type Offset struct {
	X, Y int
}

// Template is the fixed spawn layout of a kind: a base coordinate in the spawn
// buffer and four deltas added to it.
type Template struct {
	BaseX, BaseY int
	Deltas       [4]Offset
}

// Cells returns the absolute coordinates of the template's four cells.
func (t Template) Cells() [4]Offset {
	var out [4]Offset
	for i, d := range t.Deltas {
		out[i] = Offset{X: t.BaseX + d.X, Y: t.BaseY + d.Y}
	}
	return out
}

// SpawnRow is the row every template's base sits on: the first row of the
// spawn buffer above a 20-row playfield.
const SpawnRow = 20

const spawnColumn = 4

var templates = map[Kind]Template{
	O: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
	I: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{-1, 0}, {0, 0}, {1, 0}, {2, 0}}},
	T: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{-1, 0}, {0, 0}, {1, 0}, {0, 1}}},
	S: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{-1, 0}, {0, 0}, {0, 1}, {1, 1}}},
	Z: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{-1, 1}, {0, 1}, {0, 0}, {1, 0}}},
	J: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}}},
	L: {BaseX: spawnColumn, BaseY: SpawnRow, Deltas: [4]Offset{{1, 1}, {-1, 0}, {0, 0}, {1, 0}}},
}

// TemplateFor returns the spawn template of k.
// Panics if k is not a canonical kind.
func TemplateFor(k Kind) Template {
	t, ok := templates[k]
	if !ok {
		panic("no template for piece kind " + k.String())
	}
	return t
}
