package capture

import (
	"sync"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// VirtualSource is a Source driven by calls instead of hardware. Each call
// dispatches synchronously on the caller's goroutine.
type VirtualSource struct {
	hooks

	mu  sync.Mutex
	pos action.Position
}

// NewVirtualSource returns a source with no subscribers and the pointer at 0,0.
func NewVirtualSource() *VirtualSource {
	return &VirtualSource{}
}

// Press simulates a key going down.
func (s *VirtualSource) Press(code keymap.CaptureCode) { s.keyDown.emit(code) }

// Release simulates a key going up.
func (s *VirtualSource) Release(code keymap.CaptureCode) { s.keyUp.emit(code) }

// Tap presses and releases code.
func (s *VirtualSource) Tap(code keymap.CaptureCode) {
	s.Press(code)
	s.Release(code)
}

// ButtonPress simulates a mouse button going down.
func (s *VirtualSource) ButtonPress(code keymap.CaptureCode) { s.buttonDown.emit(code) }

// ButtonRelease simulates a mouse button going up.
func (s *VirtualSource) ButtonRelease(code keymap.CaptureCode) { s.buttonUp.emit(code) }

// SetPointer moves the simulated pointer.
func (s *VirtualSource) SetPointer(p action.Position) {
	s.mu.Lock()
	s.pos = p
	s.mu.Unlock()
}

// PointerPosition returns the position last set with SetPointer.
func (s *VirtualSource) PointerPosition() action.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

var _ Source = (*VirtualSource)(nil)
