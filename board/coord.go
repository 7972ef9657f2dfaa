package board

import "fmt"

// Coord is an integer grid coordinate. Y grows upward; row 0 is the floor.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c moved one step in direction d.
func (c Coord) Add(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Direction is a single-cell step.
type Direction uint8

const (
	Left Direction = iota + 1
	Right
	Down
)

// Delta returns the coordinate offset of one step in d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// PixelTransform maps grid coordinates to pixel positions for a renderer.
// It is a pure function of the coordinate, the board dimensions and the cell size.
type PixelTransform struct {
	Width    int
	Height   int
	CellSize float64
}

// Center returns the pixel center of c in a y-up space whose origin is the
// middle of the board.
func (p PixelTransform) Center(c Coord) (x, y float64) {
	boardW := float64(p.Width) * p.CellSize
	boardH := float64(p.Height) * p.CellSize
	x = float64(c.X)*p.CellSize - (boardW-p.CellSize)/2
	y = float64(c.Y)*p.CellSize - (boardH-p.CellSize)/2
	return x, y
}

// TopLeft returns the top-left pixel corner of c in a y-down screen space whose
// origin is the top-left corner of the board's Height visible rows.
func (p PixelTransform) TopLeft(c Coord) (x, y float64) {
	x = float64(c.X) * p.CellSize
	y = float64(p.Height-1-c.Y) * p.CellSize
	return x, y
}
