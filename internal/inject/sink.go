// Package inject synthesizes keyboard and mouse input.
package inject

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

var (
	// ErrUnsupportedKey is returned by a sink that cannot produce a key.
	ErrUnsupportedKey = errors.New("key not supported by sink")
	// ErrBackendUnavailable is returned when a backend was not compiled in.
	ErrBackendUnavailable = errors.New("injection backend not available in this build")
)

// Sink is an OS input synthesizer. Keys and buttons are named in the
// injection vocabulary of package keymap.
type Sink interface {
	KeyDown(k keymap.Key) error
	KeyUp(k keymap.Key) error
	// KeyClick presses and releases k.
	KeyClick(k keymap.Key) error
	// MoveTo places the pointer at absolute screen coordinates.
	MoveTo(x, y int) error
	ButtonDown(b keymap.Button) error
	ButtonUp(b keymap.Button) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendUinput  = "uinput"
	BackendRobotgo = "robotgo"
	BackendLog     = "log"
)

// Screen is the coordinate space MoveTo addresses.
type Screen struct {
	Width  int
	Height int
}

// Options configures Open.
type Options struct {
	Backend string
	// DeviceName names the virtual devices uinput creates.
	DeviceName string
	// UinputPath defaults to /dev/uinput.
	UinputPath string
	Screen     Screen
	Logger     *slog.Logger
}

// Open creates the sink selected by opts.Backend.
func Open(opts Options) (Sink, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Backend {
	case BackendUinput, "":
		return NewUinputSink(opts)
	case BackendRobotgo:
		return newRobotgoSink(logger)
	case BackendLog:
		return NewLogSink(logger), nil
	default:
		return nil, fmt.Errorf("unknown injection backend %q (valid: %s, %s, %s)",
			opts.Backend, BackendUinput, BackendRobotgo, BackendLog)
	}
}
