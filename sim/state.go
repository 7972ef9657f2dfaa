package sim

import (
	"fmt"
	"slices"
)

// PlayState is the outer state of a play session.
type PlayState uint8

const (
	Menu PlayState = iota
	Playing
	Win
	Lose
)

var playStateNames = [...]string{"menu", "playing", "win", "lose"}

func (p PlayState) String() string {
	if int(p) < len(playStateNames) {
		return playStateNames[p]
	}
	return fmt.Sprintf("PlayState(%d)", uint8(p))
}

// MarshalText encodes p by name.
func (p PlayState) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (p *PlayState) UnmarshalText(b []byte) error {
	i := slices.Index(playStateNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("sim: unknown play state %q", b)
	}
	*p = PlayState(i)
	return nil
}

// playTransitions lists, per current state, the states a request may move to.
// Every other request is ignored.
var playTransitions = map[PlayState][]PlayState{
	Menu:    {Playing},
	Playing: {Win, Lose},
	Win:     {Playing, Menu},
	Lose:    {Playing, Menu},
}

// CanTransition reports whether a request for to is honored while in from.
func CanTransition(from, to PlayState) bool {
	return slices.Contains(playTransitions[from], to)
}

// FlowState is the inner phase that sequences a running game.
type FlowState uint8

const (
	FlowMenu FlowState = iota
	PlayerFalling
	CheckingRows
	CascadeFalling
)

var flowStateNames = [...]string{"menu", "player-falling", "checking-rows", "cascade-falling"}

func (f FlowState) String() string {
	if int(f) < len(flowStateNames) {
		return flowStateNames[f]
	}
	return fmt.Sprintf("FlowState(%d)", uint8(f))
}

// MarshalText encodes f by name.
func (f FlowState) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (f *FlowState) UnmarshalText(b []byte) error {
	i := slices.Index(flowStateNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("sim: unknown flow state %q", b)
	}
	*f = FlowState(i)
	return nil
}
