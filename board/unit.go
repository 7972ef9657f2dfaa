package board

import (
	"iter"

	"github.com/plus3/blockfall/piece"
)

// Handle addresses one unit in a board. Units created by the same spawn share
// an ID but each has its own handle. Handles of despawned units may be reused.
type Handle uint32

// Unit is the smallest movable occupied cell.
type Unit struct {
	ID         UnitID     `json:"id"`
	Coord      Coord      `json:"coord"`
	Kind       piece.Kind `json:"kind"`
	Controlled bool       `json:"controlled,omitempty"`
}

// Placed pairs a unit with its handle.
type Placed struct {
	Handle Handle
	Unit
}

const unitBlockSize = 64

// unitStore keeps units in fixed-size blocks so handles stay stable while
// units come and go. Freed slots are reused before the store grows.
type unitStore struct {
	blocks    [][unitBlockSize]Unit
	filled    [][unitBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (s *unitStore) add(u Unit) Handle {
	s.count++
	if n := len(s.freeSlots); n > 0 {
		index := s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
		s.blocks[index/unitBlockSize][index%unitBlockSize] = u
		s.filled[index/unitBlockSize][index%unitBlockSize] = true
		return Handle(index)
	}

	index := s.nextIndex
	s.nextIndex++

	blockIdx := index / unitBlockSize
	if blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, [unitBlockSize]Unit{})
		s.filled = append(s.filled, [unitBlockSize]bool{})
	}

	s.blocks[blockIdx][index%unitBlockSize] = u
	s.filled[blockIdx][index%unitBlockSize] = true
	return Handle(index)
}

func (s *unitStore) get(h Handle) *Unit {
	index := int(h)
	blockIdx := index / unitBlockSize
	if index >= s.nextIndex || blockIdx >= len(s.blocks) {
		return nil
	}
	if !s.filled[blockIdx][index%unitBlockSize] {
		return nil
	}
	return &s.blocks[blockIdx][index%unitBlockSize]
}

func (s *unitStore) remove(h Handle) {
	index := int(h)
	blockIdx := index / unitBlockSize
	if index >= s.nextIndex || blockIdx >= len(s.blocks) {
		return
	}
	if s.filled[blockIdx][index%unitBlockSize] {
		s.filled[blockIdx][index%unitBlockSize] = false
		s.blocks[blockIdx][index%unitBlockSize] = Unit{}
		s.freeSlots = append(s.freeSlots, index)
		s.count--
	}
}

// all iterates live units in handle order.
func (s *unitStore) all() iter.Seq2[Handle, *Unit] {
	return func(yield func(Handle, *Unit) bool) {
		for i := 0; i < s.nextIndex; i++ {
			blockIdx := i / unitBlockSize
			if !s.filled[blockIdx][i%unitBlockSize] {
				continue
			}
			if !yield(Handle(i), &s.blocks[blockIdx][i%unitBlockSize]) {
				return
			}
		}
	}
}

func (s *unitStore) reset() {
	s.blocks = nil
	s.filled = nil
	s.freeSlots = nil
	s.nextIndex = 0
	s.count = 0
}
