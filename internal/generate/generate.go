// Package generate synthesizes actions for demos and tests.
package generate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// TypingOptions controls TypeText.
type TypingOptions struct {
	// Interval is the time between the starts of consecutive keystrokes.
	Interval time.Duration
	// Hold is how long each key stays down.
	Hold time.Duration
	// Jitter randomizes each interval by up to ±Jitter.
	Jitter time.Duration
	// Lead is the quiet time before the first keystroke.
	Lead time.Duration
	// Tail is the quiet time after the last release, added to till.
	Tail time.Duration
	Seed int64
}

// DefaultTypingOptions returns a moderate human typing pace.
func DefaultTypingOptions() TypingOptions {
	return TypingOptions{
		Interval: 120 * time.Millisecond,
		Hold:     60 * time.Millisecond,
		Lead:     0,
		Tail:     500 * time.Millisecond,
	}
}

// shifted maps US-layout shifted symbols to their base key.
var shifted = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '<': ',', '>': '.', '?': '/', '~': '`',
}

var named = map[rune]keymap.Key{
	' ':  "space",
	'\n': "enter",
	'\t': "tab",
}

// stroke resolves r to a capture code and whether shift must be held.
func stroke(r rune) (keymap.CaptureCode, bool, error) {
	shift := false
	switch {
	case r >= 'A' && r <= 'Z':
		r, shift = r-'A'+'a', true
	default:
		if base, ok := shifted[r]; ok {
			r, shift = base, true
		}
	}

	k, ok := named[r]
	if !ok {
		k = keymap.Key(string(r))
	}
	code, ok := keymap.InjectionToCapture(k)
	if !ok {
		return 0, false, fmt.Errorf("no key types %q", r)
	}
	return code, shift, nil
}

func ms(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}

// TypeText builds a keyboard action that types text. Uppercase letters and
// shifted symbols are typed with the left shift key held.
func TypeText(text string, opts TypingOptions) (action.Keyboard, error) {
	if opts.Interval <= 0 {
		return action.Keyboard{}, fmt.Errorf("interval must be positive, got %s", opts.Interval)
	}
	if opts.Hold <= 0 || opts.Hold >= opts.Interval {
		return action.Keyboard{}, fmt.Errorf("hold must be positive and shorter than interval, got %s", opts.Hold)
	}
	if opts.Jitter < 0 {
		return action.Keyboard{}, fmt.Errorf("jitter must not be negative, got %s", opts.Jitter)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	hold := ms(opts.Hold)
	shiftCode, _ := keymap.InjectionToCapture("shift")

	a := action.Keyboard{Events: []action.KeyEv{}}
	t := ms(opts.Lead)
	last := t
	for i, r := range []rune(text) {
		code, shift, err := stroke(r)
		if err != nil {
			return action.Keyboard{}, fmt.Errorf("character %d: %w", i, err)
		}
		if shift {
			a.Events = append(a.Events, action.KeyEv{Code: shiftCode, Press: true, Timestamp: t})
		}
		a.Events = append(a.Events,
			action.KeyEv{Code: code, Press: true, Timestamp: t},
			action.KeyEv{Code: code, Press: false, Timestamp: t + hold},
		)
		if shift {
			a.Events = append(a.Events, action.KeyEv{Code: shiftCode, Press: false, Timestamp: t + hold})
		}
		last = t + hold

		step := opts.Interval
		if opts.Jitter > 0 {
			step += time.Duration(rng.Int63n(int64(2*opts.Jitter)+1)) - opts.Jitter
		}
		// the next press never overlaps this release
		t += max(ms(step), hold+1)
	}

	if len(a.Events) > 0 {
		a.Till = last + ms(opts.Tail)
	}
	return a, nil
}

// ClickOptions controls Clicks.
type ClickOptions struct {
	Count    int
	Interval time.Duration
	Hold     time.Duration
	// Width and Height bound the random click positions.
	Width, Height int
	// Button is one of keymap.ButtonLeft, ButtonRight or ButtonMiddle.
	Button keymap.Button
	Seed   int64
}

// DefaultClickOptions returns ten left clicks on a 1920x1080 screen.
func DefaultClickOptions() ClickOptions {
	return ClickOptions{
		Count:    10,
		Interval: time.Second,
		Hold:     80 * time.Millisecond,
		Width:    1920,
		Height:   1080,
		Button:   keymap.ButtonLeft,
	}
}

var clickKinds = map[keymap.Button][2]action.MouseKind{
	keymap.ButtonLeft:   {action.LeftDown, action.LeftUp},
	keymap.ButtonRight:  {action.RightDown, action.RightUp},
	keymap.ButtonMiddle: {action.MiddleDown, action.MiddleUp},
}

// Clicks builds a mouse action of evenly spaced clicks at random positions.
func Clicks(opts ClickOptions) (action.Mouse, error) {
	if opts.Count <= 0 {
		return action.Mouse{}, fmt.Errorf("count must be positive, got %d", opts.Count)
	}
	if opts.Interval <= 0 || opts.Hold <= 0 || opts.Hold >= opts.Interval {
		return action.Mouse{}, fmt.Errorf("need 0 < hold < interval, got hold %s interval %s", opts.Hold, opts.Interval)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return action.Mouse{}, fmt.Errorf("screen size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	kinds, ok := clickKinds[opts.Button]
	if !ok {
		return action.Mouse{}, fmt.Errorf("unknown button %q", opts.Button)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	a := action.Mouse{Events: make([]action.MouseEv, 0, 2*opts.Count)}
	for i := 0; i < opts.Count; i++ {
		t := uint64(i) * ms(opts.Interval)
		pos := action.Position{X: rng.Intn(opts.Width), Y: rng.Intn(opts.Height)}
		a.Events = append(a.Events,
			action.MouseEv{Kind: kinds[0], Position: pos, Timestamp: t},
			action.MouseEv{Kind: kinds[1], Position: pos, Timestamp: t + ms(opts.Hold)},
		)
	}
	a.Till = uint64(opts.Count) * ms(opts.Interval)
	return a, nil
}
