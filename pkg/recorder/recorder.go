// Package recorder captures live input into timestamped actions.
package recorder

import (
	internalcapture "github.com/SmitUplenchwar2687/Toca/internal/capture"
	internalrecorder "github.com/SmitUplenchwar2687/Toca/internal/recorder"
)

// ErrRecording is returned by Record while a session is already running.
var ErrRecording = internalrecorder.ErrRecording

type (
	// Source is where recorders read key and button transitions from.
	Source = internalcapture.Source
	// EvdevOptions configures OpenEvdev.
	EvdevOptions = internalcapture.EvdevOptions
	// EvdevSource reads Linux input devices.
	EvdevSource = internalcapture.EvdevSource

	KeyboardRecorder = internalrecorder.KeyboardRecorder
	MouseRecorder    = internalrecorder.MouseRecorder
	Option           = internalrecorder.Option
	Event            = internalrecorder.Event
	Observer         = internalrecorder.Observer
)

// OpenEvdev opens Linux input devices for capture.
func OpenEvdev(opts EvdevOptions) (*EvdevSource, error) {
	return internalcapture.OpenEvdev(opts)
}

// NewKeyboard creates a keyboard recorder reading from src.
func NewKeyboard(src Source, opts ...Option) *KeyboardRecorder {
	return internalrecorder.NewKeyboard(src, opts...)
}

// NewMouse creates a mouse recorder reading from src.
func NewMouse(src Source, opts ...Option) *MouseRecorder {
	return internalrecorder.NewMouse(src, opts...)
}

var (
	WithClock    = internalrecorder.WithClock
	WithLogger   = internalrecorder.WithLogger
	WithObserver = internalrecorder.WithObserver
)
