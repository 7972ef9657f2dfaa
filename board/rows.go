package board

import "slices"

// FullRows returns, in increasing order, every playable row whose cells are
// all occupied.
func (b *Board) FullRows() ([]int, error) {
	snap := b.Snapshot()
	var full []int
	for y := 0; y < b.playable; y++ {
		complete := true
		for x := 0; x < b.width; x++ {
			cell, ok, err := snap.Lookup(Coord{X: x, Y: y})
			if err != nil {
				return nil, err
			}
			if !ok || !cell.Occupied {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, y)
		}
	}
	return full, nil
}

// ClearRows removes every full playable row and drops each remaining unit by
// the number of cleared rows beneath it. It returns the cleared rows.
func (b *Board) ClearRows() ([]int, error) {
	full, err := b.FullRows()
	if err != nil || len(full) == 0 {
		return nil, err
	}

	for h, u := range b.units.all() {
		if _, hit := slices.BinarySearch(full, u.Coord.Y); hit {
			b.despawn(h, u)
		}
	}
	for _, y := range full {
		for x := 0; x < b.width; x++ {
			b.grid.Clear(Coord{X: x, Y: y})
		}
	}

	var moves []move
	for h, u := range b.units.all() {
		shift, _ := slices.BinarySearch(full, u.Coord.Y)
		if shift > 0 {
			moves = append(moves, move{handle: h, to: Coord{X: u.Coord.X, Y: u.Coord.Y - shift}})
		}
	}
	b.relocate(moves)
	return full, nil
}
