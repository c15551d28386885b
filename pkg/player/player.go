// Package player replays recorded actions through an injection sink.
package player

import (
	internalinject "github.com/SmitUplenchwar2687/Toca/internal/inject"
	internalplayer "github.com/SmitUplenchwar2687/Toca/internal/player"
)

// ErrBusy is returned by Load and Play while a playback is running.
var ErrBusy = internalplayer.ErrBusy

type (
	// Sink receives injected input.
	Sink = internalinject.Sink
	// SinkOptions configures OpenSink.
	SinkOptions = internalinject.Options

	KeyboardPlayer = internalplayer.KeyboardPlayer
	MousePlayer    = internalplayer.MousePlayer
	Summary        = internalplayer.Summary
	Option         = internalplayer.Option
)

// OpenSink creates the injection backend named by opts.Backend.
func OpenSink(opts SinkOptions) (Sink, error) {
	return internalinject.Open(opts)
}

// NewKeyboard creates a keyboard player injecting into sink.
func NewKeyboard(sink Sink, opts ...Option) *KeyboardPlayer {
	return internalplayer.NewKeyboard(sink, opts...)
}

// NewMouse creates a mouse player injecting into sink.
func NewMouse(sink Sink, opts ...Option) *MousePlayer {
	return internalplayer.NewMouse(sink, opts...)
}

var (
	WithClock      = internalplayer.WithClock
	WithSpeed      = internalplayer.WithSpeed
	WithTapMode    = internalplayer.WithTapMode
	WithStartDelay = internalplayer.WithStartDelay
	WithLogger     = internalplayer.WithLogger
)
