package sim_test

import (
	"fmt"
	"io"
	"log"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/sim"
)

// A session with a full floor row clears it once the first piece lands.
func ExampleSession() {
	s, err := sim.New(config.Default(),
		sim.WithLayout("AAAAAAAAAA"),
		sim.WithLogger(log.New(io.Discard, "", 0)),
	)
	if err != nil {
		panic(err)
	}

	s.Apply(sim.StartGame)
	for s.FlowState() != sim.CheckingRows {
		if err := s.Step(); err != nil {
			panic(err)
		}
	}
	s.Step()

	sb := sim.Scoreboard{PerRow: s.Config().ScorePerRow}
	sb.Observe(s.Drain())
	fmt.Println(s.PlayState(), s.FlowState(), sb.Rows, sb.Score)
	// Output: playing cascade-falling 1 100
}
