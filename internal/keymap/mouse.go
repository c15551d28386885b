package keymap

import "github.com/holoplot/go-evdev"

// MouseKind is the neutral representation of a button transition. Its
// numeric values are the persisted ev_name values.
type MouseKind uint8

const (
	LeftDown MouseKind = iota + 1
	LeftUp
	RightDown
	RightUp
	MiddleDown
	MiddleUp
)

var mouseKindNames = map[MouseKind]string{
	LeftDown:   "LeftDown",
	LeftUp:     "LeftUp",
	RightDown:  "RightDown",
	RightUp:    "RightUp",
	MiddleDown: "MiddleDown",
	MiddleUp:   "MiddleUp",
}

func (k MouseKind) String() string {
	if name, ok := mouseKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether k is one of the six supported transitions.
func (k MouseKind) Valid() bool {
	return k >= LeftDown && k <= MiddleUp
}

// Button identifies a mouse button in the injection space.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "center"
)

type buttonEntry struct {
	capture CaptureCode
	button  Button
	down    MouseKind
	up      MouseKind
}

// Wheel, side and extra buttons are deliberately absent.
var buttonTable = []buttonEntry{
	{evdev.BTN_LEFT, ButtonLeft, LeftDown, LeftUp},
	{evdev.BTN_RIGHT, ButtonRight, RightDown, RightUp},
	{evdev.BTN_MIDDLE, ButtonMiddle, MiddleDown, MiddleUp},
}

// ButtonToKind maps a capture button transition to its neutral kind.
func ButtonToKind(c CaptureCode, press bool) (MouseKind, bool) {
	for _, e := range buttonTable {
		if e.capture != c {
			continue
		}
		if press {
			return e.down, true
		}
		return e.up, true
	}
	return 0, false
}

// KindToButton decomposes a kind into the injection button and whether it
// is a press.
func KindToButton(k MouseKind) (Button, bool, bool) {
	for _, e := range buttonTable {
		switch k {
		case e.down:
			return e.button, true, true
		case e.up:
			return e.button, false, true
		}
	}
	return "", false, false
}

// KindToCapture returns the capture button and press flag for a kind.
func KindToCapture(k MouseKind) (CaptureCode, bool, bool) {
	for _, e := range buttonTable {
		switch k {
		case e.down:
			return e.capture, true, true
		case e.up:
			return e.capture, false, true
		}
	}
	return 0, false, false
}

// IsButton reports whether c is a supported mouse button in the capture space.
func IsButton(c CaptureCode) bool {
	for _, e := range buttonTable {
		if e.capture == c {
			return true
		}
	}
	return false
}
