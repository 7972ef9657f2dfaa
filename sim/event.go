package sim

import (
	"fmt"
	"slices"

	"github.com/plus3/blockfall/board"
)

// EventKind tells which fields of an Event are meaningful.
type EventKind uint8

const (
	// UnitSpawned: Handle, Unit.
	UnitSpawned EventKind = iota + 1
	// UnitMoved: Handle, Unit (new position), From.
	UnitMoved
	// UnitDespawned: Handle, Unit (last position).
	UnitDespawned
	// RowsCleared: Rows. Sent once per row check, with zero when nothing cleared.
	RowsCleared
	// HardDropped: Rows travelled by the controlled units.
	HardDropped
	// PlayChanged: PlayFrom, PlayTo.
	PlayChanged
	// FlowChanged: FlowFrom, FlowTo.
	FlowChanged
)

var eventKindNames = [...]string{"?", "unit-spawned", "unit-moved", "unit-despawned", "rows-cleared", "hard-dropped", "play-changed", "flow-changed"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// MarshalText encodes k by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	i := slices.Index(eventKindNames[:], string(b))
	if i <= 0 {
		return fmt.Errorf("sim: unknown event kind %q", b)
	}
	*k = EventKind(i)
	return nil
}

// Event is one outbound notification for renderers, scoring and tracing.
type Event struct {
	Kind EventKind `json:"kind"`
	Tick uint64    `json:"tick"`

	Handle board.Handle `json:"handle,omitempty"`
	Unit   board.Unit   `json:"unit,omitzero"`
	From   board.Coord  `json:"from,omitzero"`

	Rows int `json:"rows,omitempty"`

	PlayFrom PlayState `json:"play_from,omitempty"`
	PlayTo   PlayState `json:"play_to,omitempty"`
	FlowFrom FlowState `json:"flow_from,omitempty"`
	FlowTo   FlowState `json:"flow_to,omitempty"`
}

// Queue buffers events until the owner drains them, once per frame.
type Queue struct {
	events []Event
}

func (q *Queue) push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns every pending event in order and empties the queue.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}
