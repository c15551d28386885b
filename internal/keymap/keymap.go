// Package keymap translates key and mouse button codes between the three
// code spaces Toca deals with:
//
//   - capture space: Linux input-event codes as delivered by evdev
//   - injection space: key and button names understood by the injection sinks
//   - neutral space: browser KeyboardEvent.code names, used for persistence
//
// Only the capture -> neutral and injection -> neutral tables are maintained
// by hand. Every other direction is derived from them at init, and
// capture <-> injection lookups go through the neutral space.
//
// A lookup with no image reports ok == false. That is the "unsupported"
// case, callers skip the event.
package keymap

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
)

// CaptureCode identifies a key or button in the capture space.
type CaptureCode = evdev.EvCode

// Key identifies a key in the injection space.
type Key string

// Code identifies a key in the neutral space.
type Code string

var (
	captureToNeutral   map[CaptureCode]Code
	neutralToCapture   map[Code]CaptureCode
	injectionToNeutral map[Key]Code
	neutralToInjection map[Code]Key
)

func init() {
	captureToNeutral = make(map[CaptureCode]Code, len(captureTable))
	neutralToCapture = make(map[Code]CaptureCode, len(captureTable))
	for _, e := range captureTable {
		if _, dup := captureToNeutral[e.capture]; dup {
			panic(fmt.Sprintf("keymap: duplicate capture code %d", e.capture))
		}
		if _, dup := neutralToCapture[e.code]; dup {
			panic(fmt.Sprintf("keymap: duplicate neutral code %q in capture table", e.code))
		}
		captureToNeutral[e.capture] = e.code
		neutralToCapture[e.code] = e.capture
	}

	injectionToNeutral = make(map[Key]Code, len(injectionTable))
	neutralToInjection = make(map[Code]Key, len(injectionTable)+len(coalesced))
	for _, e := range injectionTable {
		if _, dup := neutralToInjection[e.code]; dup {
			panic(fmt.Sprintf("keymap: duplicate neutral code %q in injection table", e.code))
		}
		injectionToNeutral[e.key] = e.code
		neutralToInjection[e.code] = e.key
	}
	for alias, canonical := range coalesced {
		if k, ok := neutralToInjection[canonical]; ok {
			neutralToInjection[alias] = k
		}
	}
}

func normalize(c Code) Code {
	if n, ok := legacySpellings[c]; ok {
		return n
	}
	return c
}

// CaptureToNeutral returns the neutral code for a capture code.
func CaptureToNeutral(c CaptureCode) (Code, bool) {
	code, ok := captureToNeutral[c]
	return code, ok
}

// NeutralToCapture returns the capture code for a neutral code.
func NeutralToCapture(c Code) (CaptureCode, bool) {
	capture, ok := neutralToCapture[normalize(c)]
	return capture, ok
}

// InjectionToNeutral returns the canonical neutral code for an injection key.
// Generic modifiers report their left-hand code.
func InjectionToNeutral(k Key) (Code, bool) {
	code, ok := injectionToNeutral[k]
	return code, ok
}

// NeutralToInjection returns the injection key for a neutral code. Left and
// right modifiers both map to the generic modifier key; numpad digits, minus
// and slash map to their main-row keys.
func NeutralToInjection(c Code) (Key, bool) {
	k, ok := neutralToInjection[normalize(c)]
	return k, ok
}

// CaptureToInjection returns the injection key for a capture code.
func CaptureToInjection(c CaptureCode) (Key, bool) {
	code, ok := CaptureToNeutral(c)
	if !ok {
		return "", false
	}
	return NeutralToInjection(code)
}

// InjectionToCapture returns the capture code for an injection key. Generic
// modifiers resolve to the left-hand key.
func InjectionToCapture(k Key) (CaptureCode, bool) {
	code, ok := InjectionToNeutral(k)
	if !ok {
		return 0, false
	}
	return NeutralToCapture(code)
}

// Codes returns the neutral vocabulary in table order.
func Codes() []Code {
	out := make([]Code, len(captureTable))
	for i, e := range captureTable {
		out[i] = e.code
	}
	return out
}

// ParseCaptureCode resolves a user-supplied key name. It accepts a neutral
// code ("Escape"), an evdev name ("KEY_ESC") or an injection key ("esc").
func ParseCaptureCode(s string) (CaptureCode, error) {
	if c, ok := NeutralToCapture(Code(s)); ok {
		return c, nil
	}
	if c, ok := evdev.KEYFromString[strings.ToUpper(s)]; ok {
		if _, known := captureToNeutral[c]; known {
			return c, nil
		}
	}
	if c, ok := InjectionToCapture(Key(strings.ToLower(s))); ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// CaptureName renders a capture code for humans: its neutral name when it
// has one, otherwise the evdev constant name.
func CaptureName(c CaptureCode) string {
	if n, ok := CaptureToNeutral(c); ok {
		return string(n)
	}
	return evdev.CodeName(evdev.EV_KEY, c)
}
