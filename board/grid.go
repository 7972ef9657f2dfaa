package board

import (
	"errors"
	"fmt"
)

// UnitID tags every unit created by one spawn. Zero means no unit.
type UnitID uint32

// NoUnit is the owner of an empty cell.
const NoUnit UnitID = 0

// Cell is the occupancy record of one coordinate.
type Cell struct {
	Occupied bool
	Owner    UnitID
}

// ErrMissingCell reports an in-bounds coordinate that has no cell.
var ErrMissingCell = errors.New("board: missing cell")

// InvariantError is returned when the grid no longer matches its declared
// dimensions. The tick that hit it must not continue mutating state.
type InvariantError struct {
	Coord Coord
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board: no cell for in-bounds coordinate %s", e.Coord)
}

func (e *InvariantError) Unwrap() error {
	return ErrMissingCell
}

// Grid stores one cell per coordinate of a fixed width×height area.
// Cells are created once by NewGrid and mutated in place afterwards.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a grid with an empty cell at every coordinate.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// Get returns the cell at c. The result is false only for out-of-bounds coordinates.
func (g *Grid) Get(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return g.cells[c.Y*g.width+c.X], true
}

// SetOccupied marks c as held by id.
// Writing over a cell that is already occupied is a programming error and panics.
func (g *Grid) SetOccupied(c Coord, id UnitID) {
	cell := g.mustCell(c)
	if cell.Occupied {
		panic(fmt.Sprintf("board: cell %s already held by unit %d, cannot assign %d", c, cell.Owner, id))
	}
	if id == NoUnit {
		panic("board: cannot occupy a cell with the empty unit id")
	}
	cell.Occupied = true
	cell.Owner = id
}

// Clear empties the cell at c.
func (g *Grid) Clear(c Coord) {
	cell := g.mustCell(c)
	*cell = Cell{}
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, cell := range g.cells {
		if cell.Occupied {
			n++
		}
	}
	return n
}

func (g *Grid) mustCell(c Coord) *Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("board: coordinate %s outside %dx%d grid", c, g.width, g.height))
	}
	return &g.cells[c.Y*g.width+c.X]
}

// Snapshot is an immutable copy of a grid taken before a tick mutates it.
// Lookups are bounded by the board's declared dimensions: coordinates outside
// them are simply absent, while a declared coordinate the grid cannot back is
// an invariant violation.
type Snapshot struct {
	width  int
	height int
	cols   int
	rows   int
	cells  []Cell
}

func newSnapshot(width, height int, g *Grid) Snapshot {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Snapshot{
		width:  width,
		height: height,
		cols:   g.width,
		rows:   g.height,
		cells:  cells,
	}
}

// Lookup returns the cell at c. ok is false when c is outside the declared
// dimensions; err is an *InvariantError when c is inside them but unbacked.
func (s Snapshot) Lookup(c Coord) (cell Cell, ok bool, err error) {
	if c.X < 0 || c.Y < 0 || c.X >= s.width || c.Y >= s.height {
		return Cell{}, false, nil
	}
	if c.X >= s.cols || c.Y >= s.rows {
		return Cell{}, false, &InvariantError{Coord: c}
	}
	return s.cells[c.Y*s.cols+c.X], true, nil
}
