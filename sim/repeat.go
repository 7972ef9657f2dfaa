package sim

import "time"

// Repeater paces a held horizontal move: one move on press, another
// after Initial, then one every Rate until released.
type Repeater struct {
	Initial time.Duration
	Rate    time.Duration

	holding   bool
	repeating bool
	acc       time.Duration
}

// NewRepeater returns a released repeater.
func NewRepeater(initial, rate time.Duration) Repeater {
	return Repeater{Initial: initial, Rate: rate}
}

// Press starts holding. It reports true when the press itself should move,
// which is only the case when the key was not already held.
func (r *Repeater) Press() bool {
	if r.holding {
		return false
	}
	r.holding = true
	r.repeating = false
	r.acc = 0
	return true
}

// Advance returns how many repeat moves became due during dt.
func (r *Repeater) Advance(dt time.Duration) int {
	if !r.holding || dt <= 0 {
		return 0
	}
	r.acc += dt
	fires := 0
	for {
		threshold := r.Rate
		if !r.repeating {
			threshold = r.Initial
		}
		if threshold <= 0 || r.acc < threshold {
			return fires
		}
		r.acc -= threshold
		r.repeating = true
		fires++
	}
}

// Release stops holding and forgets any accumulated time.
func (r *Repeater) Release() {
	r.holding = false
	r.repeating = false
	r.acc = 0
}

// Holding reports whether a move is held.
func (r *Repeater) Holding() bool {
	return r.holding
}
