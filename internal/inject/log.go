package inject

import (
	"log/slog"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// LogSink writes every call to a logger and injects nothing. Used for dry
// runs.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink that logs every call at info level. A nil
// logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("sink", BackendLog)}
}

func (s *LogSink) KeyDown(k keymap.Key) error {
	s.logger.Info("key down", "key", string(k))
	return nil
}

func (s *LogSink) KeyUp(k keymap.Key) error {
	s.logger.Info("key up", "key", string(k))
	return nil
}

func (s *LogSink) KeyClick(k keymap.Key) error {
	s.logger.Info("key click", "key", string(k))
	return nil
}

func (s *LogSink) MoveTo(x, y int) error {
	s.logger.Info("move", "x", x, "y", y)
	return nil
}

func (s *LogSink) ButtonDown(b keymap.Button) error {
	s.logger.Info("button down", "button", string(b))
	return nil
}

func (s *LogSink) ButtonUp(b keymap.Button) error {
	s.logger.Info("button up", "button", string(b))
	return nil
}

func (s *LogSink) Close() error { return nil }

var _ Sink = (*LogSink)(nil)
