// Package piece defines the seven canonical piece kinds, their spawn templates,
// and the bag randomizer that deals them.
package piece

import "fmt"

// Kind identifies one of the seven canonical pieces. The zero value is not a valid kind.
type Kind uint8

const (
	I Kind = iota + 1
	J
	L
	O
	S
	T
	Z
)

// All lists every canonical kind in a fixed order.
var All = [...]Kind{I, J, L, O, S, T, Z}

// Count is the number of canonical kinds.
const Count = len(All)

var kindNames = [...]string{"?", "I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the canonical kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= Z
}

// ParseKind returns the kind named by a single letter.
func ParseKind(s string) (Kind, error) {
	for _, k := range All {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Color returns the RGB tint frontends use for a kind.
func (k Kind) Color() [3]uint8 {
	switch k {
	case I:
		return [3]uint8{102, 204, 255}
	case J:
		return [3]uint8{0, 102, 255}
	case L:
		return [3]uint8{255, 153, 0}
	case O:
		return [3]uint8{255, 221, 0}
	case S:
		return [3]uint8{102, 221, 68}
	case T:
		return [3]uint8{170, 85, 255}
	case Z:
		return [3]uint8{255, 68, 85}
	}
	return [3]uint8{128, 128, 128}
}
