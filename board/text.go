package board

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/plus3/blockfall/piece"
)

// LoadText places units described by rows of text, top row first, with the
// last line as row 0. '.' is an empty cell, an upper-case letter a landed unit
// and a lower-case letter a controlled unit. Equal letters (ignoring case)
// share one ID; a letter naming a piece kind also sets the kind, otherwise O.
func (b *Board) LoadText(text string) error {
	lines := textLines(text)
	if len(lines) > b.height {
		return fmt.Errorf("board: %d rows do not fit in height %d", len(lines), b.height)
	}

	ids := make(map[rune]UnitID)
	for row := len(lines) - 1; row >= 0; row-- {
		line := []rune(lines[row])
		y := len(lines) - 1 - row
		if len(line) != b.width {
			return fmt.Errorf("board: row %d has %d cells, want %d", y, len(line), b.width)
		}
		for x, r := range line {
			if r == '.' {
				continue
			}
			if !unicode.IsLetter(r) {
				return fmt.Errorf("board: unexpected %q at %s", r, Coord{X: x, Y: y})
			}
			group := unicode.ToUpper(r)
			id, ok := ids[group]
			if !ok {
				id = b.allocID()
				ids[group] = id
			}
			kind, err := piece.ParseKind(string(group))
			if err != nil {
				kind = piece.O
			}

			c := Coord{X: x, Y: y}
			cell, ok, err := b.cell(c)
			if err != nil {
				return err
			}
			if !ok || cell.Occupied {
				return fmt.Errorf("board: cannot place at %s", c)
			}
			b.add(Unit{ID: id, Coord: c, Kind: kind, Controlled: unicode.IsLower(r)})
		}
	}
	return nil
}

// Text renders the bottom rows of the board, top row first. Empty cells are
// '.', landed units '#', controlled units '@' and occupied cells without a
// unit '?'.
func (b *Board) Text(rows int) string {
	rows = min(rows, b.height)
	marks := make(map[Coord]rune, b.units.count)
	for _, u := range b.units.all() {
		if u.Controlled {
			marks[u.Coord] = '@'
		} else {
			marks[u.Coord] = '#'
		}
	}

	var sb strings.Builder
	for y := rows - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			c := Coord{X: x, Y: y}
			if m, ok := marks[c]; ok {
				sb.WriteRune(m)
				continue
			}
			if cell, ok := b.grid.Get(c); ok && cell.Occupied {
				sb.WriteRune('?')
				continue
			}
			sb.WriteRune('.')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func textLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
