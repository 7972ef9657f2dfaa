package sim

import "time"

// Ticker turns variable frame deltas into whole fixed-length ticks.
// Elapsed time accumulates and is drained in a loop, so a long frame
// produces several ticks instead of dropping them.
type Ticker struct {
	Interval time.Duration
	acc      time.Duration
}

// Add accumulates dt without draining.
func (t *Ticker) Add(dt time.Duration) {
	if dt > 0 {
		t.acc += dt
	}
}

// Next consumes one tick if a whole interval has accumulated.
func (t *Ticker) Next() bool {
	if t.Interval <= 0 || t.acc < t.Interval {
		return false
	}
	t.acc -= t.Interval
	return true
}

// Advance adds dt and returns how many ticks are now due.
func (t *Ticker) Advance(dt time.Duration) int {
	t.Add(dt)
	n := 0
	for t.Next() {
		n++
	}
	return n
}

// Pending returns the accumulated time not yet consumed by a tick.
func (t *Ticker) Pending() time.Duration {
	return t.acc
}

// Reset drops any accumulated time.
func (t *Ticker) Reset() {
	t.acc = 0
}
