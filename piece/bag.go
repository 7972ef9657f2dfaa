package piece

import "math/rand/v2"

// Bag deals kinds by drawing without replacement from a working set of all
// seven kinds, refilling the set as soon as it runs empty.
type Bag struct {
	rng     *rand.Rand
	current []Kind
}

// NewBag creates a filled bag. A nil rng uses a randomly seeded source.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Bag{rng: rng, current: make([]Kind, 0, Count)}
	b.refill()
	return b
}

func (b *Bag) refill() {
	b.current = append(b.current[:0], All[:]...)
}

// Next removes a uniformly chosen kind from the bag and returns it.
func (b *Bag) Next() Kind {
	index := b.rng.IntN(len(b.current))
	k := b.current[index]
	b.current = append(b.current[:index], b.current[index+1:]...)
	if len(b.current) == 0 {
		b.refill()
	}
	return k
}

// Remaining returns how many kinds are left before the next refill.
func (b *Bag) Remaining() int {
	return len(b.current)
}

// Reset refills the bag, discarding any partially dealt set.
func (b *Bag) Reset() {
	b.refill()
}
