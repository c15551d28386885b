//go:build !robotgo

package inject

import (
	"fmt"
	"log/slog"
)

func newRobotgoSink(*slog.Logger) (Sink, error) {
	return nil, fmt.Errorf("%s (rebuild with -tags robotgo): %w", BackendRobotgo, ErrBackendUnavailable)
}
