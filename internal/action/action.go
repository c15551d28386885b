// Package action holds the recorded event model and its JSON form.
package action

import (
	"errors"
	"fmt"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// Kind names the device class an action was recorded from.
type Kind string

const (
	KindKeyboard Kind = "keyboard"
	KindMouse    Kind = "mouse"
)

// ParseKind validates a user-supplied kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindKeyboard, KindMouse:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown action kind %q, must be keyboard or mouse", s)
	}
}

var (
	// ErrUnordered is reported by Validate when timestamps decrease.
	ErrUnordered = errors.New("events are not ordered by timestamp")
	// ErrTillBeforeLast is reported by Validate when till is earlier than the last event.
	ErrTillBeforeLast = errors.New("till is before the last event")
)

// KeyEv is a single key transition. Timestamp is in milliseconds from the
// start of the recording session.
type KeyEv struct {
	Code      keymap.CaptureCode
	Press     bool
	Timestamp uint64
}

// MouseKind aliases the neutral button transition.
type MouseKind = keymap.MouseKind

const (
	LeftDown   = keymap.LeftDown
	LeftUp     = keymap.LeftUp
	RightDown  = keymap.RightDown
	RightUp    = keymap.RightUp
	MiddleDown = keymap.MiddleDown
	MiddleUp   = keymap.MiddleUp
)

// Position is a screen coordinate.
type Position struct {
	X int
	Y int
}

// MouseEv is a single button transition at a pointer position.
type MouseEv struct {
	Kind      MouseKind
	Position  Position
	Timestamp uint64
}

// Keyboard is a recorded sequence of key transitions. Till is the total
// duration of the session and may exceed the last timestamp.
type Keyboard struct {
	Events []KeyEv
	Till   uint64
}

// Mouse is a recorded sequence of button transitions.
type Mouse struct {
	Events []MouseEv
	Till   uint64
}

// Validate checks ordering and duration invariants.
func (a Keyboard) Validate() error {
	ts := make([]uint64, len(a.Events))
	for i, ev := range a.Events {
		ts[i] = ev.Timestamp
	}
	return validate(ts, a.Till)
}

// Validate checks ordering and duration invariants.
func (a Mouse) Validate() error {
	ts := make([]uint64, len(a.Events))
	for i, ev := range a.Events {
		ts[i] = ev.Timestamp
	}
	return validate(ts, a.Till)
}

func validate(ts []uint64, till uint64) error {
	for i := 1; i < len(ts); i++ {
		if ts[i] < ts[i-1] {
			return fmt.Errorf("event %d at %dms after %dms: %w", i, ts[i], ts[i-1], ErrUnordered)
		}
	}
	if n := len(ts); n > 0 && till < ts[n-1] {
		return fmt.Errorf("till %dms, last event %dms: %w", till, ts[n-1], ErrTillBeforeLast)
	}
	return nil
}

// Clone returns a deep copy.
func (a Keyboard) Clone() Keyboard {
	out := Keyboard{Till: a.Till}
	if a.Events != nil {
		out.Events = make([]KeyEv, len(a.Events))
		copy(out.Events, a.Events)
	}
	return out
}

// Clone returns a deep copy.
func (a Mouse) Clone() Mouse {
	out := Mouse{Till: a.Till}
	if a.Events != nil {
		out.Events = make([]MouseEv, len(a.Events))
		copy(out.Events, a.Events)
	}
	return out
}
