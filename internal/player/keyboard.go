package player

import (
	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// KeyboardPlayer replays keyboard actions. One instance plays at most one
// action at a time.
type KeyboardPlayer struct {
	queue[action.KeyEv]
	sink inject.Sink
}

// NewKeyboard returns an idle keyboard player injecting through sink.
func NewKeyboard(sink inject.Sink, opts ...Option) *KeyboardPlayer {
	p := &KeyboardPlayer{sink: sink}
	p.opts = buildOptions(opts)
	return p
}

// Load replaces the queued action. It fails with ErrBusy during playback
// and leaves the previous queue in place.
func (p *KeyboardPlayer) Load(a action.Keyboard) error {
	return p.load(a.Events, a.Till)
}

// Play replays the loaded action on the calling goroutine and returns once
// every event has been handled. There is no way to interrupt it.
func (p *KeyboardPlayer) Play() (Summary, error) {
	events, till, err := p.begin()
	if err != nil {
		return Summary{}, err
	}
	defer p.end()

	return p.play(events, till, func(ev action.KeyEv) uint64 { return ev.Timestamp }, p.emit), nil
}

func (p *KeyboardPlayer) emit(ev action.KeyEv) outcome {
	key, ok := keymap.CaptureToInjection(ev.Code)
	if !ok {
		p.opts.logger.Debug("skipping unmappable key", "code", keymap.CaptureName(ev.Code), "ts", ev.Timestamp)
		return skipped
	}

	var err error
	switch {
	case p.opts.tap && !ev.Press:
		return skipped
	case p.opts.tap:
		err = p.sink.KeyClick(key)
	case ev.Press:
		err = p.sink.KeyDown(key)
	default:
		err = p.sink.KeyUp(key)
	}
	if err != nil {
		p.opts.logger.Warn("key injection failed", "key", string(key), "press", ev.Press, "ts", ev.Timestamp, "error", err)
		return failed
	}
	return injected
}

// Events returns a copy of the loaded queue.
func (p *KeyboardPlayer) Events() []action.KeyEv {
	return p.snapshot()
}
