package board_test

import (
	"fmt"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/piece"
)

func ExampleBoard_ClearRows() {
	b := board.New(4, 6, board.WithPlayableRows(4))
	if err := b.LoadText(`
		.B..
		.BB.
		AAAA
	`); err != nil {
		panic(err)
	}

	rows, err := b.ClearRows()
	if err != nil {
		panic(err)
	}
	fmt.Println("cleared", rows)
	fmt.Print(b.Text(3))
	// Output:
	// cleared [0]
	// ....
	// .#..
	// .##.
}

func ExampleBoard_Spawn() {
	b := board.New(board.Width, board.Height)
	id, err := b.Spawn(piece.O)
	if err != nil {
		panic(err)
	}
	for _, u := range b.Units() {
		fmt.Println(u.ID == id, u.Coord, u.Controlled)
	}
	// Output:
	// true (4,20) true
	// true (5,20) true
	// true (5,21) true
	// true (4,21) true
}
