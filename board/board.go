// Package board holds the authoritative play grid and the units moving on it:
// spawning, gravity, group shifts and full-row clearing.
//
// Every mutating operation validates against a Snapshot first and only then
// touches the grid, so a tick either applies completely or not at all.
package board

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/plus3/blockfall/piece"
)

const (
	// Width is the standard number of columns.
	Width = 10
	// Height is the standard number of rows, spawn buffer included.
	Height = 30
	// PlayableRows is the number of visible rows counted from the floor.
	PlayableRows = 20

	// FirstUnitID is the ID given to the first spawn of a session.
	FirstUnitID UnitID = 2
)

// ErrSpawnBlocked is returned when a spawn template overlaps occupied or
// off-grid cells.
var ErrSpawnBlocked = errors.New("board: spawn area blocked")

// Observer receives one notification per unit created, moved or destroyed.
type Observer interface {
	UnitSpawned(h Handle, u Unit)
	UnitMoved(h Handle, u Unit, from Coord)
	UnitDespawned(h Handle, u Unit)
}

type nopObserver struct{}

func (nopObserver) UnitSpawned(Handle, Unit)      {}
func (nopObserver) UnitMoved(Handle, Unit, Coord) {}
func (nopObserver) UnitDespawned(Handle, Unit)    {}

// Option configures a Board.
type Option func(*Board)

// WithGrid backs the board with an existing grid instead of a fresh one.
func WithGrid(g *Grid) Option {
	return func(b *Board) { b.grid = g }
}

// WithPlayableRows sets how many rows, from the floor, are scanned for clears.
func WithPlayableRows(rows int) Option {
	return func(b *Board) { b.playable = rows }
}

// WithLandingPolicy selects how spawn siblings fall.
func WithLandingPolicy(p LandingPolicy) Option {
	return func(b *Board) { b.policy = p }
}

// WithSpawnOverwrite makes Spawn replace whatever sits in its template cells
// instead of failing with ErrSpawnBlocked.
func WithSpawnOverwrite(overwrite bool) Option {
	return func(b *Board) { b.overwrite = overwrite }
}

// WithObserver registers the receiver of unit notifications.
func WithObserver(o Observer) Option {
	return func(b *Board) {
		if o != nil {
			b.observer = o
		}
	}
}

// Board owns a grid and every unit placed on it.
// A Board is not safe for concurrent use.
type Board struct {
	width     int
	height    int
	playable  int
	grid      *Grid
	units     unitStore
	nextID    UnitID
	policy    LandingPolicy
	overwrite bool
	observer  Observer
}

// New creates a board with the declared width and height.
func New(width, height int, opts ...Option) *Board {
	b := &Board{
		width:    width,
		height:   height,
		playable: min(PlayableRows, height),
		nextID:   FirstUnitID,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.grid == nil {
		b.grid = NewGrid(width, height)
	}
	return b
}

// Width returns the declared number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the declared number of rows.
func (b *Board) Height() int { return b.height }

// PlayableRows returns the number of rows scanned for clears.
func (b *Board) PlayableRows() int { return b.playable }

// Grid exposes the backing grid for read access.
func (b *Board) Grid() *Grid { return b.grid }

// Policy returns the landing policy in effect.
func (b *Board) Policy() LandingPolicy { return b.policy }

// Len returns the number of live units.
func (b *Board) Len() int { return b.units.count }

// NextID returns the ID the next spawn will receive.
func (b *Board) NextID() UnitID { return b.nextID }

// Snapshot copies the grid for validation.
func (b *Board) Snapshot() Snapshot {
	return newSnapshot(b.width, b.height, b.grid)
}

// Unit returns a copy of the unit behind h.
func (b *Board) Unit(h Handle) (Unit, bool) {
	u := b.units.get(h)
	if u == nil {
		return Unit{}, false
	}
	return *u, true
}

// Units iterates copies of all live units in handle order.
func (b *Board) Units() iter.Seq2[Handle, Unit] {
	return func(yield func(Handle, Unit) bool) {
		for h, u := range b.units.all() {
			if !yield(h, *u) {
				return
			}
		}
	}
}

// Placed returns every live unit with its handle.
func (b *Board) Placed() []Placed {
	out := make([]Placed, 0, b.units.count)
	for h, u := range b.units.all() {
		out = append(out, Placed{Handle: h, Unit: *u})
	}
	return out
}

// Controlled returns the units the player may still move.
func (b *Board) Controlled() []Placed {
	var out []Placed
	for h, u := range b.units.all() {
		if u.Controlled {
			out = append(out, Placed{Handle: h, Unit: *u})
		}
	}
	return out
}

// HasControlled reports whether any unit is still player-controlled.
func (b *Board) HasControlled() bool {
	for _, u := range b.units.all() {
		if u.Controlled {
			return true
		}
	}
	return false
}

// Reset removes every unit, empties the grid and restarts ID allocation.
// No notifications are sent.
func (b *Board) Reset() {
	b.units.reset()
	b.grid.Reset()
	b.nextID = FirstUnitID
}

// cell resolves c against the declared dimensions and the backing grid.
func (b *Board) cell(c Coord) (*Cell, bool, error) {
	if c.X < 0 || c.Y < 0 || c.X >= b.width || c.Y >= b.height {
		return nil, false, nil
	}
	if !b.grid.InBounds(c) {
		return nil, false, &InvariantError{Coord: c}
	}
	return b.grid.mustCell(c), true, nil
}

func (b *Board) allocID() UnitID {
	id := b.nextID
	b.nextID++
	return id
}

// Spawn creates the four units of kind k at its template position. All four
// share one fresh ID and start player-controlled.
func (b *Board) Spawn(k piece.Kind) (UnitID, error) {
	cells := piece.TemplateFor(k).Cells()

	coords := make([]Coord, 0, len(cells))
	for _, off := range cells {
		c := Coord{X: off.X, Y: off.Y}
		cell, ok, err := b.cell(c)
		if err != nil {
			return NoUnit, err
		}
		if !ok {
			return NoUnit, fmt.Errorf("%w: %s is off the board", ErrSpawnBlocked, c)
		}
		if cell.Occupied && !b.overwrite {
			return NoUnit, fmt.Errorf("%w: %s held by unit %d", ErrSpawnBlocked, c, cell.Owner)
		}
		coords = append(coords, c)
	}

	if b.overwrite {
		b.evict(coords)
	}

	id := b.allocID()
	for _, c := range coords {
		b.add(Unit{ID: id, Coord: c, Kind: k, Controlled: true})
	}
	return id, nil
}

// Place puts landed units of kind k at coords under one fresh ID.
// It is meant for building positions in tools and tests.
func (b *Board) Place(k piece.Kind, coords ...Coord) (UnitID, error) {
	for _, c := range coords {
		cell, ok, err := b.cell(c)
		if err != nil {
			return NoUnit, err
		}
		if !ok || cell.Occupied {
			return NoUnit, fmt.Errorf("board: cannot place at %s", c)
		}
	}
	id := b.allocID()
	for _, c := range coords {
		b.add(Unit{ID: id, Coord: c, Kind: k})
	}
	return id, nil
}

func (b *Board) add(u Unit) Handle {
	b.grid.SetOccupied(u.Coord, u.ID)
	h := b.units.add(u)
	b.observer.UnitSpawned(h, u)
	return h
}

// evict despawns whatever unit holds one of coords.
func (b *Board) evict(coords []Coord) {
	for h, u := range b.units.all() {
		if slices.Contains(coords, u.Coord) {
			b.despawn(h, u)
		}
	}
	for _, c := range coords {
		b.grid.Clear(c)
	}
}

func (b *Board) despawn(h Handle, u *Unit) {
	gone := *u
	b.grid.Clear(u.Coord)
	b.units.remove(h)
	b.observer.UnitDespawned(h, gone)
}

type move struct {
	handle Handle
	to     Coord
}

// relocate moves every unit in moves at once: all old cells are vacated before
// any new cell is written, so units may step into each other's old cells.
func (b *Board) relocate(moves []move) {
	for _, m := range moves {
		b.grid.Clear(b.units.get(m.handle).Coord)
	}
	for _, m := range moves {
		u := b.units.get(m.handle)
		from := u.Coord
		u.Coord = m.to
		b.grid.SetOccupied(m.to, u.ID)
		b.observer.UnitMoved(m.handle, *u, from)
	}
}
