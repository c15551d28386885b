//go:build robotgo

package inject

import (
	"log/slog"

	"github.com/go-vgo/robotgo"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// RobotgoSink injects through robotgo, which talks to the desktop session
// (X11, macOS or Windows) instead of the kernel. Built with -tags robotgo.
type RobotgoSink struct {
	logger *slog.Logger
}

func newRobotgoSink(logger *slog.Logger) (Sink, error) {
	return &RobotgoSink{logger: logger}, nil
}

func (s *RobotgoSink) KeyDown(k keymap.Key) error {
	return robotgo.KeyToggle(string(k), "down")
}

func (s *RobotgoSink) KeyUp(k keymap.Key) error {
	return robotgo.KeyToggle(string(k), "up")
}

func (s *RobotgoSink) KeyClick(k keymap.Key) error {
	return robotgo.KeyTap(string(k))
}

func (s *RobotgoSink) MoveTo(x, y int) error {
	s.logger.Debug("robotgo move", "x", x, "y", y)
	robotgo.Move(x, y)
	return nil
}

func (s *RobotgoSink) ButtonDown(b keymap.Button) error {
	return robotgo.Toggle(string(b))
}

func (s *RobotgoSink) ButtonUp(b keymap.Button) error {
	return robotgo.Toggle(string(b), "up")
}

func (s *RobotgoSink) Close() error { return nil }
