package keymap

import "github.com/holoplot/go-evdev"

type captureEntry struct {
	capture CaptureCode
	code    Code
}

type injectionEntry struct {
	key  Key
	code Code
}

// captureTable is the forward capture -> neutral table. It is 1:1 and its
// order is the order Codes() reports.
var captureTable = []captureEntry{
	// F1-F12
	{evdev.KEY_F1, "F1"},
	{evdev.KEY_F2, "F2"},
	{evdev.KEY_F3, "F3"},
	{evdev.KEY_F4, "F4"},
	{evdev.KEY_F5, "F5"},
	{evdev.KEY_F6, "F6"},
	{evdev.KEY_F7, "F7"},
	{evdev.KEY_F8, "F8"},
	{evdev.KEY_F9, "F9"},
	{evdev.KEY_F10, "F10"},
	{evdev.KEY_F11, "F11"},
	{evdev.KEY_F12, "F12"},
	// 0-9
	{evdev.KEY_0, "Digit0"},
	{evdev.KEY_1, "Digit1"},
	{evdev.KEY_2, "Digit2"},
	{evdev.KEY_3, "Digit3"},
	{evdev.KEY_4, "Digit4"},
	{evdev.KEY_5, "Digit5"},
	{evdev.KEY_6, "Digit6"},
	{evdev.KEY_7, "Digit7"},
	{evdev.KEY_8, "Digit8"},
	{evdev.KEY_9, "Digit9"},
	// A-Z
	{evdev.KEY_A, "KeyA"},
	{evdev.KEY_B, "KeyB"},
	{evdev.KEY_C, "KeyC"},
	{evdev.KEY_D, "KeyD"},
	{evdev.KEY_E, "KeyE"},
	{evdev.KEY_F, "KeyF"},
	{evdev.KEY_G, "KeyG"},
	{evdev.KEY_H, "KeyH"},
	{evdev.KEY_I, "KeyI"},
	{evdev.KEY_J, "KeyJ"},
	{evdev.KEY_K, "KeyK"},
	{evdev.KEY_L, "KeyL"},
	{evdev.KEY_M, "KeyM"},
	{evdev.KEY_N, "KeyN"},
	{evdev.KEY_O, "KeyO"},
	{evdev.KEY_P, "KeyP"},
	{evdev.KEY_Q, "KeyQ"},
	{evdev.KEY_R, "KeyR"},
	{evdev.KEY_S, "KeyS"},
	{evdev.KEY_T, "KeyT"},
	{evdev.KEY_U, "KeyU"},
	{evdev.KEY_V, "KeyV"},
	{evdev.KEY_W, "KeyW"},
	{evdev.KEY_X, "KeyX"},
	{evdev.KEY_Y, "KeyY"},
	{evdev.KEY_Z, "KeyZ"},
	// control and navigation, left to right, top to bottom
	{evdev.KEY_ESC, "Escape"},
	{evdev.KEY_TAB, "Tab"},
	{evdev.KEY_CAPSLOCK, "CapsLock"},
	{evdev.KEY_LEFTSHIFT, "ShiftLeft"},
	{evdev.KEY_RIGHTSHIFT, "ShiftRight"},
	{evdev.KEY_LEFTCTRL, "ControlLeft"},
	{evdev.KEY_RIGHTCTRL, "ControlRight"},
	{evdev.KEY_LEFTALT, "AltLeft"},
	{evdev.KEY_RIGHTALT, "AltRight"},
	{evdev.KEY_LEFTMETA, "MetaLeft"},
	{evdev.KEY_RIGHTMETA, "MetaRight"},
	{evdev.KEY_SPACE, "Space"},
	{evdev.KEY_UP, "ArrowUp"},
	{evdev.KEY_RIGHT, "ArrowRight"},
	{evdev.KEY_DOWN, "ArrowDown"},
	{evdev.KEY_LEFT, "ArrowLeft"},
	{evdev.KEY_ENTER, "Enter"},
	{evdev.KEY_BACKSPACE, "Backspace"},
	{evdev.KEY_INSERT, "Insert"},
	{evdev.KEY_DELETE, "Delete"},
	{evdev.KEY_HOME, "Home"},
	{evdev.KEY_PAGEUP, "PageUp"},
	{evdev.KEY_PAGEDOWN, "PageDown"},
	{evdev.KEY_END, "End"},
	// punctuation
	{evdev.KEY_GRAVE, "Backquote"},
	{evdev.KEY_MINUS, "Minus"},
	{evdev.KEY_EQUAL, "Equal"},
	{evdev.KEY_LEFTBRACE, "BracketLeft"},
	{evdev.KEY_RIGHTBRACE, "BracketRight"},
	{evdev.KEY_COMMA, "Comma"},
	{evdev.KEY_DOT, "Period"},
	{evdev.KEY_SEMICOLON, "Semicolon"},
	{evdev.KEY_APOSTROPHE, "Quote"},
	{evdev.KEY_SLASH, "Slash"},
	{evdev.KEY_BACKSLASH, "Backslash"},
	// numpad: digits and the minus and slash keys type as their main-row
	// counterparts, add and multiply have no injection image
	{evdev.KEY_KP0, "Numpad0"},
	{evdev.KEY_KP1, "Numpad1"},
	{evdev.KEY_KP2, "Numpad2"},
	{evdev.KEY_KP3, "Numpad3"},
	{evdev.KEY_KP4, "Numpad4"},
	{evdev.KEY_KP5, "Numpad5"},
	{evdev.KEY_KP6, "Numpad6"},
	{evdev.KEY_KP7, "Numpad7"},
	{evdev.KEY_KP8, "Numpad8"},
	{evdev.KEY_KP9, "Numpad9"},
	{evdev.KEY_KPPLUS, "NumpadAdd"},
	{evdev.KEY_KPMINUS, "NumpadSubtract"},
	{evdev.KEY_KPASTERISK, "NumpadMultiply"},
	{evdev.KEY_KPSLASH, "NumpadDivide"},
}

// injectionTable is the forward injection -> neutral table. Each key names
// the neutral code it is the canonical image of.
var injectionTable = []injectionEntry{
	{"f1", "F1"},
	{"f2", "F2"},
	{"f3", "F3"},
	{"f4", "F4"},
	{"f5", "F5"},
	{"f6", "F6"},
	{"f7", "F7"},
	{"f8", "F8"},
	{"f9", "F9"},
	{"f10", "F10"},
	{"f11", "F11"},
	{"f12", "F12"},
	{"0", "Digit0"},
	{"1", "Digit1"},
	{"2", "Digit2"},
	{"3", "Digit3"},
	{"4", "Digit4"},
	{"5", "Digit5"},
	{"6", "Digit6"},
	{"7", "Digit7"},
	{"8", "Digit8"},
	{"9", "Digit9"},
	{"a", "KeyA"},
	{"b", "KeyB"},
	{"c", "KeyC"},
	{"d", "KeyD"},
	{"e", "KeyE"},
	{"f", "KeyF"},
	{"g", "KeyG"},
	{"h", "KeyH"},
	{"i", "KeyI"},
	{"j", "KeyJ"},
	{"k", "KeyK"},
	{"l", "KeyL"},
	{"m", "KeyM"},
	{"n", "KeyN"},
	{"o", "KeyO"},
	{"p", "KeyP"},
	{"q", "KeyQ"},
	{"r", "KeyR"},
	{"s", "KeyS"},
	{"t", "KeyT"},
	{"u", "KeyU"},
	{"v", "KeyV"},
	{"w", "KeyW"},
	{"x", "KeyX"},
	{"y", "KeyY"},
	{"z", "KeyZ"},
	{"esc", "Escape"},
	{"tab", "Tab"},
	{"capslock", "CapsLock"},
	{"shift", "ShiftLeft"},
	{"ctrl", "ControlLeft"},
	{"alt", "AltLeft"},
	{"space", "Space"},
	{"up", "ArrowUp"},
	{"right", "ArrowRight"},
	{"down", "ArrowDown"},
	{"left", "ArrowLeft"},
	{"enter", "Enter"},
	{"backspace", "Backspace"},
	{"delete", "Delete"},
	{"home", "Home"},
	{"pageup", "PageUp"},
	{"pagedown", "PageDown"},
	{"end", "End"},
	{"`", "Backquote"},
	{"-", "Minus"},
	{"=", "Equal"},
	{"[", "BracketLeft"},
	{"]", "BracketRight"},
	{",", "Comma"},
	{".", "Period"},
	{";", "Semicolon"},
	{"'", "Quote"},
	{"/", "Slash"},
	{"\\", "Backslash"},
}

// coalesced lists neutral codes that share the injection image of another
// neutral code. The injection space has a single generic modifier key for
// each side-specific pair, and numpad keys type the same character as the
// main-row key.
var coalesced = map[Code]Code{
	"ShiftRight":     "ShiftLeft",
	"ControlRight":   "ControlLeft",
	"AltRight":       "AltLeft",
	"Numpad0":        "Digit0",
	"Numpad1":        "Digit1",
	"Numpad2":        "Digit2",
	"Numpad3":        "Digit3",
	"Numpad4":        "Digit4",
	"Numpad5":        "Digit5",
	"Numpad6":        "Digit6",
	"Numpad7":        "Digit7",
	"Numpad8":        "Digit8",
	"Numpad9":        "Digit9",
	"NumpadSubtract": "Minus",
	"NumpadDivide":   "Slash",
}

// legacySpellings are accepted on input and normalized to the current name.
var legacySpellings = map[Code]Code{
	"BackSlash": "Backslash",
}
