package board

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// LandingPolicy decides how units created by the same spawn relate while falling.
type LandingPolicy uint8

const (
	// PerUnit lets every unit fall and land on its own; a piece may come apart
	// when part of it is supported and the rest is not.
	PerUnit LandingPolicy = iota
	// Rigid lets a unit fall only if every unit sharing its ID can fall.
	Rigid
)

func (p LandingPolicy) String() string {
	switch p {
	case PerUnit:
		return "per-unit"
	case Rigid:
		return "rigid"
	}
	return fmt.Sprintf("LandingPolicy(%d)", uint8(p))
}

// ParseLandingPolicy accepts "per-unit" or "rigid".
func ParseLandingPolicy(s string) (LandingPolicy, error) {
	switch s {
	case "", "per-unit":
		return PerUnit, nil
	case "rigid":
		return Rigid, nil
	}
	return 0, fmt.Errorf("unknown landing policy %q", s)
}

// FallMap holds the fall verdict of every unit evaluated in one tick.
type FallMap struct {
	valid *intmap.Map[Handle, bool]
}

// Valid reports whether the unit behind h may move one row down.
// Units that were not evaluated are never valid.
func (f FallMap) Valid(h Handle) bool {
	if f.valid == nil {
		return false
	}
	v, _ := f.valid.Get(h)
	return v
}

// Len returns the number of evaluated units.
func (f FallMap) Len() int {
	if f.valid == nil {
		return 0
	}
	return f.valid.Len()
}

const (
	verdictUnknown uint8 = iota
	verdictVisiting
	verdictValid
	verdictInvalid
)

// CanFall decides, for every unit, whether the cell one row below it can take it.
// A unit may fall iff that cell exists and is either empty or held by a unit
// with the same ID that itself falls this tick. Everything is read from snap,
// so the result does not depend on the order of units.
func CanFall(units []Placed, snap Snapshot, policy LandingPolicy) (FallMap, error) {
	at := intmap.New[int, int](len(units) + 1)
	for i, u := range units {
		at.Put(snap.index(u.Coord), i)
	}

	verdicts := make([]uint8, len(units))
	var resolve func(i int) (bool, error)
	resolve = func(i int) (bool, error) {
		switch verdicts[i] {
		case verdictValid:
			return true, nil
		case verdictInvalid, verdictVisiting:
			return false, nil
		}
		verdicts[i] = verdictVisiting

		ok, err := canEnter(units[i], units[i].Coord.Add(Down), snap, func(c Coord) (bool, error) {
			j, found := at.Get(snap.index(c))
			if !found {
				return false, nil
			}
			if policy == Rigid {
				// Every sibling is settled by the group pass below.
				return true, nil
			}
			return resolve(j)
		})
		if err != nil {
			return false, err
		}

		if ok {
			verdicts[i] = verdictValid
		} else {
			verdicts[i] = verdictInvalid
		}
		return ok, nil
	}

	for i := range units {
		if _, err := resolve(i); err != nil {
			return FallMap{}, err
		}
	}

	if policy == Rigid {
		group := intmap.New[UnitID, bool](len(units) + 1)
		for i, u := range units {
			prev, seen := group.Get(u.ID)
			group.Put(u.ID, (!seen || prev) && verdicts[i] == verdictValid)
		}
		for i, u := range units {
			if ok, _ := group.Get(u.ID); !ok {
				verdicts[i] = verdictInvalid
			}
		}
	}

	valid := intmap.New[Handle, bool](len(units) + 1)
	for i, u := range units {
		valid.Put(u.Handle, verdicts[i] == verdictValid)
	}
	return FallMap{valid: valid}, nil
}

// CanShift reports whether every unit in moving can step in direction d at
// once. A target cell must exist and be empty or held by another member of
// moving. One blocked unit vetoes the whole set; an empty set cannot shift.
func CanShift(moving []Placed, snap Snapshot, d Direction) (bool, error) {
	if len(moving) == 0 {
		return false, nil
	}

	members := intmap.New[int, bool](len(moving) + 1)
	for _, u := range moving {
		members.Put(snap.index(u.Coord), true)
	}

	for _, u := range moving {
		ok, err := canEnter(u, u.Coord.Add(d), snap, func(c Coord) (bool, error) {
			return members.Has(snap.index(c)), nil
		})
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// canEnter checks the target cell of u. Cells held by the same ID are handed
// to sibling, which decides whether the holder vacates it.
func canEnter(u Placed, target Coord, snap Snapshot, sibling func(Coord) (bool, error)) (bool, error) {
	cell, ok, err := snap.Lookup(target)
	if err != nil || !ok {
		return false, err
	}
	if !cell.Occupied {
		return true, nil
	}
	if cell.Owner != u.ID {
		return false, nil
	}
	return sibling(target)
}

func (s Snapshot) index(c Coord) int {
	return c.Y*s.width + c.X
}
