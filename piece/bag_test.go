package piece_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagDealsEachKindOncePerCycle(t *testing.T) {
	bag := piece.NewBag(rand.New(rand.NewPCG(1, 2)))

	for cycle := 0; cycle < 50; cycle++ {
		seen := make(map[piece.Kind]int)
		for i := 0; i < piece.Count; i++ {
			k := bag.Next()
			require.True(t, k.Valid(), "cycle %d draw %d returned %v", cycle, i, k)
			seen[k]++
		}
		assert.Len(t, seen, piece.Count, "cycle %d", cycle)
		for k, n := range seen {
			assert.Equal(t, 1, n, "cycle %d dealt %v %d times", cycle, k, n)
		}
	}
}

func TestBagRefillsWhenExhausted(t *testing.T) {
	bag := piece.NewBag(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, piece.Count, bag.Remaining())

	for i := 1; i < piece.Count; i++ {
		bag.Next()
		assert.Equal(t, piece.Count-i, bag.Remaining())
	}

	bag.Next()
	assert.Equal(t, piece.Count, bag.Remaining())
}

func TestBagResetDiscardsPartialCycle(t *testing.T) {
	bag := piece.NewBag(rand.New(rand.NewPCG(3, 4)))
	bag.Next()
	bag.Next()
	bag.Reset()
	assert.Equal(t, piece.Count, bag.Remaining())
}

func TestBagOrderVariesWithSeed(t *testing.T) {
	draw := func(seed uint64) []piece.Kind {
		bag := piece.NewBag(rand.New(rand.NewPCG(seed, seed)))
		out := make([]piece.Kind, 0, piece.Count*4)
		for range piece.Count * 4 {
			out = append(out, bag.Next())
		}
		return out
	}

	assert.Equal(t, draw(11), draw(11))
	assert.NotEqual(t, draw(11), draw(12))
}
