// Package keymap exposes the translation between captured key codes,
// neutral key names and injection keys.
package keymap

import internalkeymap "github.com/SmitUplenchwar2687/Toca/internal/keymap"

type (
	// CaptureCode is a Linux input event code.
	CaptureCode = internalkeymap.CaptureCode
	// Code is the neutral key name used in action files.
	Code = internalkeymap.Code
	// Key is an injection key name.
	Key = internalkeymap.Key
	// Button is an injection mouse button.
	Button = internalkeymap.Button
)

func CaptureToNeutral(c CaptureCode) (Code, bool) {
	return internalkeymap.CaptureToNeutral(c)
}

func NeutralToCapture(c Code) (CaptureCode, bool) {
	return internalkeymap.NeutralToCapture(c)
}

func CaptureToInjection(c CaptureCode) (Key, bool) {
	return internalkeymap.CaptureToInjection(c)
}

func InjectionToCapture(k Key) (CaptureCode, bool) {
	return internalkeymap.InjectionToCapture(k)
}

// ParseCaptureCode accepts neutral names, evdev names or injection keys.
func ParseCaptureCode(s string) (CaptureCode, error) {
	return internalkeymap.ParseCaptureCode(s)
}

// Codes lists every neutral code in table order.
func Codes() []Code {
	return internalkeymap.Codes()
}
