package sim

// Scoreboard totals cleared rows from the event stream.
type Scoreboard struct {
	PerRow int
	Rows   int
	Score  int
}

// Observe folds a batch of drained events into the totals.
func (s *Scoreboard) Observe(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case RowsCleared:
			s.Rows += e.Rows
			s.Score += e.Rows * s.PerRow
		case PlayChanged:
			if e.PlayTo == Playing {
				s.Rows, s.Score = 0, 0
			}
		}
	}
}
