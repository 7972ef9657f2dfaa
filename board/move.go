package board

// Fall runs one gravity step over every unit and reports whether any moved.
func (b *Board) Fall() (bool, error) {
	units := b.Placed()
	valid, err := CanFall(units, b.Snapshot(), b.policy)
	if err != nil {
		return false, err
	}
	return b.ApplyFall(units, valid), nil
}

// ApplyFall moves every unit valid moves one row down. Controlled units that
// may not fall lose control and stay put; landed units are left alone.
func (b *Board) ApplyFall(units []Placed, valid FallMap) bool {
	var moves []move
	for _, p := range units {
		u := b.units.get(p.Handle)
		if u == nil {
			continue
		}
		if valid.Valid(p.Handle) {
			moves = append(moves, move{handle: p.Handle, to: u.Coord.Add(Down)})
			continue
		}
		u.Controlled = false
	}
	b.relocate(moves)
	return len(moves) > 0
}

// Shift moves the whole controlled set one step in d, or nothing at all.
// Control flags are never changed.
func (b *Board) Shift(d Direction) (bool, error) {
	controlled := b.Controlled()
	ok, err := CanShift(controlled, b.Snapshot(), d)
	if err != nil || !ok {
		return false, err
	}

	moves := make([]move, 0, len(controlled))
	for _, p := range controlled {
		moves = append(moves, move{handle: p.Handle, to: p.Coord.Add(d)})
	}
	b.relocate(moves)
	return true, nil
}

// HardDrop shifts the controlled set down until it is blocked and returns the
// number of rows travelled.
func (b *Board) HardDrop() (int, error) {
	rows := 0
	for {
		moved, err := b.Shift(Down)
		if err != nil {
			return rows, err
		}
		if !moved {
			return rows, nil
		}
		rows++
	}
}
