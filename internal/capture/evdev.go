package capture

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/holoplot/go-evdev"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// Bounds is the screen rectangle pointer positions are clamped to. A zero
// width or height leaves that axis unclamped.
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) clamp(p action.Position) action.Position {
	if b.Width > 0 {
		p.X = min(max(p.X, 0), b.Width-1)
	}
	if b.Height > 0 {
		p.Y = min(max(p.Y, 0), b.Height-1)
	}
	return p
}

// EvdevOptions configures OpenEvdev.
type EvdevOptions struct {
	// Paths lists /dev/input/event* nodes to read. Empty means every device
	// that reports key events.
	Paths []string
	// Bounds clamps the tracked pointer position.
	Bounds Bounds
	// Origin is the assumed pointer position when capture starts. Relative
	// devices only report motion, so positions are tracked from here.
	Origin action.Position
	Logger *slog.Logger
}

// EvdevSource reads Linux input devices. Each device is served by its own
// goroutine; handlers are invoked on those goroutines.
type EvdevSource struct {
	hooks

	logger  *slog.Logger
	bounds  Bounds
	devices []*evdev.InputDevice

	posMu sync.Mutex
	pos   action.Position

	closed atomic.Bool
	wg     sync.WaitGroup
}

// OpenEvdev opens the configured devices and starts reading them. It
// returns ErrNoDevices if nothing could be opened.
func OpenEvdev(opts EvdevOptions) (*EvdevSource, error) {
	s := newEvdevSource(opts)

	paths := opts.Paths
	if len(paths) == 0 {
		found, err := evdev.ListDevicePaths()
		if err != nil {
			return nil, fmt.Errorf("listing input devices: %w", err)
		}
		for _, p := range found {
			paths = append(paths, p.Path)
		}
	}

	explicit := len(opts.Paths) > 0
	for _, path := range paths {
		dev, err := evdev.Open(path)
		if err != nil {
			if explicit {
				s.Close()
				return nil, fmt.Errorf("opening %s: %w", path, err)
			}
			s.logger.Debug("skipping input device", "path", path, "error", err)
			continue
		}
		if !explicit && !slices.Contains(dev.CapableTypes(), evdev.EV_KEY) {
			dev.Close()
			continue
		}
		name, _ := dev.Name()
		s.logger.Info("capturing input device", "path", path, "name", name)
		s.devices = append(s.devices, dev)
	}
	if len(s.devices) == 0 {
		return nil, fmt.Errorf("try running as root or adding the user to the input group: %w", ErrNoDevices)
	}

	for _, dev := range s.devices {
		s.wg.Add(1)
		go s.readLoop(dev)
	}
	return s, nil
}

func newEvdevSource(opts EvdevOptions) *EvdevSource {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EvdevSource{
		logger: logger,
		bounds: opts.Bounds,
		pos:    opts.Bounds.clamp(opts.Origin),
	}
}

// axisRange is the value range an absolute axis reports in device units.
type axisRange struct {
	min, max int
}

// absAxes holds the ranges of a device's ABS_X and ABS_Y axes. A missing
// entry means the axis values are used as screen coordinates unscaled.
type absAxes map[evdev.EvCode]axisRange

func readAbsAxes(dev *evdev.InputDevice) absAxes {
	if !slices.Contains(dev.CapableTypes(), evdev.EV_ABS) {
		return nil
	}
	infos, err := dev.AbsInfos()
	if err != nil {
		return nil
	}
	axes := absAxes{}
	for _, code := range []evdev.EvCode{evdev.ABS_X, evdev.ABS_Y} {
		if info, ok := infos[code]; ok && info.Maximum > info.Minimum {
			axes[code] = axisRange{min: int(info.Minimum), max: int(info.Maximum)}
		}
	}
	return axes
}

// scale maps v from the axis range onto [0, size).
func (a absAxes) scale(code evdev.EvCode, v, size int) int {
	r, ok := a[code]
	if !ok || size <= 0 {
		return v
	}
	return int(int64(v-r.min) * int64(size-1) / int64(r.max-r.min))
}

func (s *EvdevSource) readLoop(dev *evdev.InputDevice) {
	defer s.wg.Done()
	axes := readAbsAxes(dev)
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if !s.closed.Load() {
				s.logger.Warn("input device read failed", "path", dev.Path(), "error", err)
			}
			return
		}
		s.handle(ev, axes)
	}
}

// handle routes one kernel event from a device with the given absolute
// axes. Key repeats (value 2) are ignored.
func (s *EvdevSource) handle(ev *evdev.InputEvent, axes absAxes) {
	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Value != 0 && ev.Value != 1 {
			return
		}
		press := ev.Value == 1
		s.logger.Debug("input key event", "code", keymap.CaptureName(ev.Code), "press", press)
		switch {
		case ev.Code >= evdev.BTN_MOUSE && ev.Code < evdev.BTN_JOYSTICK:
			if press {
				s.buttonDown.emit(ev.Code)
			} else {
				s.buttonUp.emit(ev.Code)
			}
		case ev.Code < evdev.BTN_MISC:
			if press {
				s.keyDown.emit(ev.Code)
			} else {
				s.keyUp.emit(ev.Code)
			}
		}
	case evdev.EV_REL:
		s.movePointer(ev.Code, int(ev.Value), true)
	case evdev.EV_ABS:
		v := int(ev.Value)
		switch ev.Code {
		case evdev.ABS_X:
			v = axes.scale(ev.Code, v, s.bounds.Width)
		case evdev.ABS_Y:
			v = axes.scale(ev.Code, v, s.bounds.Height)
		}
		s.movePointer(ev.Code, v, false)
	}
}

func (s *EvdevSource) movePointer(code evdev.EvCode, v int, relative bool) {
	s.posMu.Lock()
	defer s.posMu.Unlock()

	p := s.pos
	switch {
	case relative && code == evdev.REL_X:
		p.X += v
	case relative && code == evdev.REL_Y:
		p.Y += v
	case !relative && code == evdev.ABS_X:
		p.X = v
	case !relative && code == evdev.ABS_Y:
		p.Y = v
	default:
		return
	}
	s.pos = s.bounds.clamp(p)
}

// PointerPosition returns the tracked pointer position.
func (s *EvdevSource) PointerPosition() action.Position {
	s.posMu.Lock()
	defer s.posMu.Unlock()
	return s.pos
}

// Close stops reading and closes every device.
func (s *EvdevSource) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	var firstErr error
	for _, dev := range s.devices {
		if err := dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.wg.Wait()
	return firstErr
}

var _ Source = (*EvdevSource)(nil)
