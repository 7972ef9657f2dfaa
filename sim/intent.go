package sim

import "fmt"

// Intent is a request from the input layer. Intents are applied between
// ticks and never mutate the board directly.
type Intent uint8

const (
	MoveLeft Intent = iota + 1
	MoveRight
	MoveRelease
	SoftDropOn
	SoftDropOff
	HardDrop
	StartGame
	OpenMenu
)

var intentNames = [...]string{"?", "move-left", "move-right", "move-release", "soft-drop-on", "soft-drop-off", "hard-drop", "start-game", "menu"}

func (i Intent) String() string {
	if i != 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return fmt.Sprintf("Intent(%d)", uint8(i))
}

// ParseIntent maps an intent name back to its value.
func ParseIntent(s string) (Intent, error) {
	for i := 1; i < len(intentNames); i++ {
		if intentNames[i] == s {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("sim: unknown intent %q", s)
}
