package inject

import (
	"errors"
	"fmt"

	"github.com/bendahl/uinput"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

const (
	defaultUinputPath = "/dev/uinput"
	defaultDeviceName = "toca"
)

var defaultScreen = Screen{Width: 1920, Height: 1080}

// UinputSink injects through virtual devices created on /dev/uinput: a
// keyboard, a touchpad for absolute pointer moves and a mouse for buttons.
type UinputSink struct {
	keyboard uinput.Keyboard
	touchpad uinput.TouchPad
	mouse    uinput.Mouse
}

// NewUinputSink creates the virtual devices. It needs write access to the
// uinput node.
func NewUinputSink(opts Options) (*UinputSink, error) {
	path := opts.UinputPath
	if path == "" {
		path = defaultUinputPath
	}
	name := opts.DeviceName
	if name == "" {
		name = defaultDeviceName
	}
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = defaultScreen
	}

	s := &UinputSink{}
	var err error
	if s.keyboard, err = uinput.CreateKeyboard(path, []byte(name+"-keyboard")); err != nil {
		return nil, fmt.Errorf("creating uinput keyboard on %s: %w", path, err)
	}
	if s.touchpad, err = uinput.CreateTouchPad(path, []byte(name+"-pointer"),
		0, int32(screen.Width-1), 0, int32(screen.Height-1)); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating uinput touchpad on %s: %w", path, err)
	}
	if s.mouse, err = uinput.CreateMouse(path, []byte(name+"-mouse")); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating uinput mouse on %s: %w", path, err)
	}
	return s, nil
}

// uinput key codes are Linux input codes.
func keyCode(k keymap.Key) (int, error) {
	code, ok := keymap.InjectionToCapture(k)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKey, k)
	}
	return int(code), nil
}

func (s *UinputSink) KeyDown(k keymap.Key) error {
	code, err := keyCode(k)
	if err != nil {
		return err
	}
	return s.keyboard.KeyDown(code)
}

func (s *UinputSink) KeyUp(k keymap.Key) error {
	code, err := keyCode(k)
	if err != nil {
		return err
	}
	return s.keyboard.KeyUp(code)
}

func (s *UinputSink) KeyClick(k keymap.Key) error {
	code, err := keyCode(k)
	if err != nil {
		return err
	}
	return s.keyboard.KeyPress(code)
}

func (s *UinputSink) MoveTo(x, y int) error {
	return s.touchpad.MoveTo(int32(x), int32(y))
}

func (s *UinputSink) ButtonDown(b keymap.Button) error {
	switch b {
	case keymap.ButtonLeft:
		return s.mouse.LeftPress()
	case keymap.ButtonRight:
		return s.mouse.RightPress()
	case keymap.ButtonMiddle:
		return s.mouse.MiddlePress()
	}
	return fmt.Errorf("unknown button %q", b)
}

func (s *UinputSink) ButtonUp(b keymap.Button) error {
	switch b {
	case keymap.ButtonLeft:
		return s.mouse.LeftRelease()
	case keymap.ButtonRight:
		return s.mouse.RightRelease()
	case keymap.ButtonMiddle:
		return s.mouse.MiddleRelease()
	}
	return fmt.Errorf("unknown button %q", b)
}

// Close destroys the virtual devices.
func (s *UinputSink) Close() error {
	var errs []error
	if s.keyboard != nil {
		errs = append(errs, s.keyboard.Close())
	}
	if s.touchpad != nil {
		errs = append(errs, s.touchpad.Close())
	}
	if s.mouse != nil {
		errs = append(errs, s.mouse.Close())
	}
	return errors.Join(errs...)
}

var _ Sink = (*UinputSink)(nil)
