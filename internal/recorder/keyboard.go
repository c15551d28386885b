package recorder

import (
	"context"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// KeyboardRecorder records key presses and releases. The zero value is not
// usable; call NewKeyboard. A recorder can be reused for any number of
// sequential sessions.
type KeyboardRecorder struct {
	session[action.KeyEv]
	src capture.Source
}

// NewKeyboard returns a keyboard recorder subscribed through src.
func NewKeyboard(src capture.Source, opts ...Option) *KeyboardRecorder {
	r := &KeyboardRecorder{src: src}
	r.opts = buildOptions(opts)
	return r
}

// Record captures key transitions until stop is pressed or ctx is done.
// The stop key press itself is not recorded. Till is the elapsed time at
// stop. On ctx cancellation the events captured so far are returned along
// with ctx.Err().
func (r *KeyboardRecorder) Record(ctx context.Context, stop keymap.CaptureCode) (action.Keyboard, error) {
	sess, err := r.begin()
	if err != nil {
		return action.Keyboard{}, err
	}
	logger := r.opts.logger.With("session", sess.id, "kind", action.KindKeyboard)

	down := r.src.OnKeyDown(func(code keymap.CaptureCode) {
		if code == stop {
			r.halt()
			return
		}
		r.capture(code, true)
	})
	defer down.Release()
	up := r.src.OnKeyUp(func(code keymap.CaptureCode) {
		r.capture(code, false)
	})
	defer up.Release()

	logger.Info("recording started", "stop", keymap.CaptureName(stop))
	events, till, err := r.wait(ctx, sess, logger)
	logger.Info("recording stopped", "events", len(events), "till_ms", till)

	return action.Keyboard{Events: events, Till: till}, err
}

func (r *KeyboardRecorder) capture(code keymap.CaptureCode, press bool) {
	ev, id, ok := r.add(func(ts uint64) action.KeyEv {
		return action.KeyEv{Code: code, Press: press, Timestamp: ts}
	}, func(id string, ev *action.KeyEv) Event {
		return Event{Session: id, Kind: action.KindKeyboard, Key: ev}
	})
	if !ok {
		return
	}
	r.opts.logger.Debug("key captured", "session", id, "code", keymap.CaptureName(code), "press", press, "ts", ev.Timestamp)
}

// Events returns a copy of the buffer of the current or last session.
func (r *KeyboardRecorder) Events() []action.KeyEv {
	return r.snapshot()
}
