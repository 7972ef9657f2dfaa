package main

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/sim"
)

// bot presses keys at random, the way a player mashing the keyboard would:
// moves are held for a few frames, soft drop toggles now and then and a game
// that ended is restarted straight away.
type bot struct {
	rng  *rand.Rand
	hold int
	soft bool
}

func newBot(rng *rand.Rand) *bot {
	return &bot{rng: rng}
}

func (b *bot) intents(state sim.PlayState) []sim.Intent {
	if state != sim.Playing {
		b.hold, b.soft = 0, false
		return []sim.Intent{sim.StartGame}
	}

	var out []sim.Intent
	switch {
	case b.hold > 0:
		b.hold--
		if b.hold == 0 {
			out = append(out, sim.MoveRelease)
		}
	case b.rng.IntN(8) == 0:
		b.hold = 1 + b.rng.IntN(20)
		if b.rng.IntN(2) == 0 {
			out = append(out, sim.MoveLeft)
		} else {
			out = append(out, sim.MoveRight)
		}
	}

	if b.rng.IntN(40) == 0 {
		b.soft = !b.soft
		if b.soft {
			out = append(out, sim.SoftDropOn)
		} else {
			out = append(out, sim.SoftDropOff)
		}
	}
	if b.rng.IntN(120) == 0 {
		out = append(out, sim.HardDrop)
	}
	return out
}
