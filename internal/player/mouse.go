package player

import (
	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// MousePlayer replays mouse actions: each event moves the pointer to the
// recorded position, then presses or releases the button.
type MousePlayer struct {
	queue[action.MouseEv]
	sink inject.Sink
}

// NewMouse returns an idle mouse player injecting through sink.
func NewMouse(sink inject.Sink, opts ...Option) *MousePlayer {
	p := &MousePlayer{sink: sink}
	p.opts = buildOptions(opts)
	return p
}

// Load replaces the queued action, or fails with ErrBusy during playback.
func (p *MousePlayer) Load(a action.Mouse) error {
	return p.load(a.Events, a.Till)
}

// Play replays the loaded action on the calling goroutine.
func (p *MousePlayer) Play() (Summary, error) {
	events, till, err := p.begin()
	if err != nil {
		return Summary{}, err
	}
	defer p.end()

	return p.play(events, till, func(ev action.MouseEv) uint64 { return ev.Timestamp }, p.emit), nil
}

func (p *MousePlayer) emit(ev action.MouseEv) outcome {
	button, press, ok := keymap.KindToButton(ev.Kind)
	if !ok {
		p.opts.logger.Debug("skipping unknown mouse event", "ev", ev.Kind.String(), "ts", ev.Timestamp)
		return skipped
	}

	if err := p.sink.MoveTo(ev.Position.X, ev.Position.Y); err != nil {
		p.opts.logger.Warn("pointer move failed", "x", ev.Position.X, "y", ev.Position.Y, "error", err)
		return failed
	}
	var err error
	if press {
		err = p.sink.ButtonDown(button)
	} else {
		err = p.sink.ButtonUp(button)
	}
	if err != nil {
		p.opts.logger.Warn("button injection failed", "button", string(button), "press", press, "error", err)
		return failed
	}
	return injected
}

// Events returns a copy of the loaded queue.
func (p *MousePlayer) Events() []action.MouseEv {
	return p.snapshot()
}
