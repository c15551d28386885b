// Package capture delivers live key and mouse button transitions from an
// input source to subscribers.
package capture

import (
	"errors"
	"sort"
	"sync"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// ErrNoDevices is returned when no usable input device could be opened.
var ErrNoDevices = errors.New("no input devices available")

// Handler receives a capture code. Handlers run on the source's goroutines
// and may be called concurrently.
type Handler func(keymap.CaptureCode)

// Guard ends a subscription. Release is safe to call more than once.
type Guard interface {
	Release()
}

// Source is an input hook. Each On* call installs a handler until its
// guard is released.
type Source interface {
	OnKeyDown(fn Handler) Guard
	OnKeyUp(fn Handler) Guard
	OnButtonDown(fn Handler) Guard
	OnButtonUp(fn Handler) Guard
	// PointerPosition reports where the pointer is right now.
	PointerPosition() action.Position
}

type guardFunc struct {
	once sync.Once
	fn   func()
}

func (g *guardFunc) Release() {
	g.once.Do(g.fn)
}

// listeners is a set of handlers for one transition kind.
type listeners struct {
	mu   sync.RWMutex
	next int
	subs map[int]Handler
}

func (l *listeners) add(fn Handler) Guard {
	l.mu.Lock()
	if l.subs == nil {
		l.subs = make(map[int]Handler)
	}
	id := l.next
	l.next++
	l.subs[id] = fn
	l.mu.Unlock()

	return &guardFunc{fn: func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}}
}

// emit calls every handler outside the lock, in subscription order.
func (l *listeners) emit(code keymap.CaptureCode) {
	l.mu.RLock()
	ids := make([]int, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Handler, len(ids))
	for i, id := range ids {
		fns[i] = l.subs[id]
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(code)
	}
}

func (l *listeners) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs)
}

// hooks bundles the four transition kinds every source exposes.
type hooks struct {
	keyDown, keyUp, buttonDown, buttonUp listeners
}

func (h *hooks) OnKeyDown(fn Handler) Guard    { return h.keyDown.add(fn) }
func (h *hooks) OnKeyUp(fn Handler) Guard      { return h.keyUp.add(fn) }
func (h *hooks) OnButtonDown(fn Handler) Guard { return h.buttonDown.add(fn) }
func (h *hooks) OnButtonUp(fn Handler) Guard   { return h.buttonUp.add(fn) }

// Subscribers reports the number of live subscriptions across all kinds.
func (h *hooks) Subscribers() int {
	return h.keyDown.len() + h.keyUp.len() + h.buttonDown.len() + h.buttonUp.len()
}
