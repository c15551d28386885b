package inject

import (
	"sync"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/clock"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// Op names a sink call.
type Op string

const (
	OpKeyDown    Op = "KeyDown"
	OpKeyUp      Op = "KeyUp"
	OpKeyClick   Op = "KeyClick"
	OpMoveTo     Op = "MoveTo"
	OpButtonDown Op = "ButtonDown"
	OpButtonUp   Op = "ButtonUp"
)

// Call is one recorded sink call. At is measured on the sink's clock from
// its creation.
type Call struct {
	Op     Op
	Key    keymap.Key
	Button keymap.Button
	X, Y   int
	At     time.Duration
}

// VirtualSink records calls instead of injecting them.
type VirtualSink struct {
	clock clock.Clock
	start time.Time

	mu     sync.Mutex
	calls  []Call
	fail   func(Call) error
	closed bool
}

// NewVirtualSink returns a sink timestamping calls on c. A nil c uses the
// real clock.
func NewVirtualSink(c clock.Clock) *VirtualSink {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &VirtualSink{clock: c, start: c.Now()}
}

// FailWith makes every call for which fn returns non-nil fail with that
// error. The failed call is still recorded.
func (s *VirtualSink) FailWith(fn func(Call) error) {
	s.mu.Lock()
	s.fail = fn
	s.mu.Unlock()
}

func (s *VirtualSink) record(c Call) error {
	c.At = s.clock.Since(s.start)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
	if s.fail != nil {
		return s.fail(c)
	}
	return nil
}

// Calls returns a copy of everything recorded so far.
func (s *VirtualSink) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Closed reports whether Close was called.
func (s *VirtualSink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *VirtualSink) KeyDown(k keymap.Key) error  { return s.record(Call{Op: OpKeyDown, Key: k}) }
func (s *VirtualSink) KeyUp(k keymap.Key) error    { return s.record(Call{Op: OpKeyUp, Key: k}) }
func (s *VirtualSink) KeyClick(k keymap.Key) error { return s.record(Call{Op: OpKeyClick, Key: k}) }
func (s *VirtualSink) MoveTo(x, y int) error       { return s.record(Call{Op: OpMoveTo, X: x, Y: y}) }

func (s *VirtualSink) ButtonDown(b keymap.Button) error {
	return s.record(Call{Op: OpButtonDown, Button: b})
}

func (s *VirtualSink) ButtonUp(b keymap.Button) error {
	return s.record(Call{Op: OpButtonUp, Button: b})
}

func (s *VirtualSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

var _ Sink = (*VirtualSink)(nil)
