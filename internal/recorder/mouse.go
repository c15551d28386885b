package recorder

import (
	"context"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// MouseRecorder records left, right and middle button transitions with
// the pointer position at the moment of each transition. Other buttons are
// ignored.
type MouseRecorder struct {
	session[action.MouseEv]
	src capture.Source
}

// NewMouse returns a mouse recorder subscribed through src.
func NewMouse(src capture.Source, opts ...Option) *MouseRecorder {
	r := &MouseRecorder{src: src}
	r.opts = buildOptions(opts)
	return r
}

// Record captures button transitions until the keyboard key stop is
// pressed or ctx is done.
func (r *MouseRecorder) Record(ctx context.Context, stop keymap.CaptureCode) (action.Mouse, error) {
	sess, err := r.begin()
	if err != nil {
		return action.Mouse{}, err
	}
	logger := r.opts.logger.With("session", sess.id, "kind", action.KindMouse)

	key := r.src.OnKeyDown(func(code keymap.CaptureCode) {
		if code == stop {
			r.halt()
		}
	})
	defer key.Release()
	down := r.src.OnButtonDown(func(code keymap.CaptureCode) {
		r.capture(code, true)
	})
	defer down.Release()
	up := r.src.OnButtonUp(func(code keymap.CaptureCode) {
		r.capture(code, false)
	})
	defer up.Release()

	logger.Info("recording started", "stop", keymap.CaptureName(stop))
	events, till, err := r.wait(ctx, sess, logger)
	logger.Info("recording stopped", "events", len(events), "till_ms", till)

	return action.Mouse{Events: events, Till: till}, err
}

func (r *MouseRecorder) capture(code keymap.CaptureCode, press bool) {
	kind, ok := keymap.ButtonToKind(code, press)
	if !ok {
		return
	}
	pos := r.src.PointerPosition()
	ev, id, ok := r.add(func(ts uint64) action.MouseEv {
		return action.MouseEv{Kind: kind, Position: pos, Timestamp: ts}
	}, func(id string, ev *action.MouseEv) Event {
		return Event{Session: id, Kind: action.KindMouse, Mouse: ev}
	})
	if !ok {
		return
	}
	r.opts.logger.Debug("button captured", "session", id, "ev", kind.String(), "x", pos.X, "y", pos.Y, "ts", ev.Timestamp)
}

// Events returns a copy of the buffer of the current or last session.
func (r *MouseRecorder) Events() []action.MouseEv {
	return r.snapshot()
}
