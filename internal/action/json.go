package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

// ErrMalformed is returned when a document does not have the action shape.
var ErrMalformed = errors.New("malformed action document")

// Wire shapes. Required fields are pointers so a missing field is
// distinguishable from a zero value.
type keyboardDoc struct {
	Evs  *[]keyEvDoc `json:"evs"`
	Till *uint64     `json:"till"`
}

type keyEvDoc struct {
	Code      *string `json:"code"`
	Press     *bool   `json:"press"`
	Timestamp *uint64 `json:"timestamp"`
}

type mouseDoc struct {
	Evs  *[]mouseEvDoc `json:"evs"`
	Till *uint64       `json:"till"`
}

type mouseEvDoc struct {
	EvName    *int    `json:"ev_name"`
	Position  []int   `json:"position"`
	Timestamp *uint64 `json:"timestamp"`
}

// Output shapes keep field order stable.
type keyboardOut struct {
	Evs  []keyEvOut `json:"evs"`
	Till uint64     `json:"till"`
}

type keyEvOut struct {
	Code      keymap.Code `json:"code"`
	Press     bool        `json:"press"`
	Timestamp uint64      `json:"timestamp"`
}

type mouseOut struct {
	Evs  []mouseEvOut `json:"evs"`
	Till uint64       `json:"till"`
}

type mouseEvOut struct {
	EvName    int    `json:"ev_name"`
	Position  [2]int `json:"position"`
	Timestamp uint64 `json:"timestamp"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrMalformed)
}

// EncodeKeyboard renders a keyboard action. Events whose code has no neutral
// name are left out.
func EncodeKeyboard(a Keyboard) ([]byte, error) {
	out := keyboardOut{Evs: make([]keyEvOut, 0, len(a.Events)), Till: a.Till}
	for _, ev := range a.Events {
		code, ok := keymap.CaptureToNeutral(ev.Code)
		if !ok {
			continue
		}
		out.Evs = append(out.Evs, keyEvOut{Code: code, Press: ev.Press, Timestamp: ev.Timestamp})
	}
	return json.Marshal(out)
}

// DecodeKeyboard parses a keyboard action. Events naming an unknown code are
// dropped; a document that does not have the action shape fails whole.
func DecodeKeyboard(data []byte) (Keyboard, error) {
	var doc keyboardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Keyboard{}, malformed("decoding keyboard action: %v", err)
	}
	if doc.Evs == nil {
		return Keyboard{}, malformed("keyboard action has no evs")
	}
	if doc.Till == nil {
		return Keyboard{}, malformed("keyboard action has no till")
	}

	a := Keyboard{Events: make([]KeyEv, 0, len(*doc.Evs)), Till: *doc.Till}
	for i, ev := range *doc.Evs {
		if ev.Code == nil || ev.Press == nil || ev.Timestamp == nil {
			return Keyboard{}, malformed("keyboard event %d is missing a field", i)
		}
		code, ok := keymap.NeutralToCapture(keymap.Code(*ev.Code))
		if !ok {
			continue
		}
		a.Events = append(a.Events, KeyEv{Code: code, Press: *ev.Press, Timestamp: *ev.Timestamp})
	}
	return a, nil
}

// EncodeMouse renders a mouse action. Events with an invalid kind are left out.
func EncodeMouse(a Mouse) ([]byte, error) {
	out := mouseOut{Evs: make([]mouseEvOut, 0, len(a.Events)), Till: a.Till}
	for _, ev := range a.Events {
		if !ev.Kind.Valid() {
			continue
		}
		out.Evs = append(out.Evs, mouseEvOut{
			EvName:    int(ev.Kind),
			Position:  [2]int{ev.Position.X, ev.Position.Y},
			Timestamp: ev.Timestamp,
		})
	}
	return json.Marshal(out)
}

// DecodeMouse parses a mouse action. Unknown ev_name values are dropped.
func DecodeMouse(data []byte) (Mouse, error) {
	var doc mouseDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Mouse{}, malformed("decoding mouse action: %v", err)
	}
	if doc.Evs == nil {
		return Mouse{}, malformed("mouse action has no evs")
	}
	if doc.Till == nil {
		return Mouse{}, malformed("mouse action has no till")
	}

	a := Mouse{Events: make([]MouseEv, 0, len(*doc.Evs)), Till: *doc.Till}
	for i, ev := range *doc.Evs {
		if ev.EvName == nil || ev.Timestamp == nil {
			return Mouse{}, malformed("mouse event %d is missing a field", i)
		}
		if len(ev.Position) != 2 {
			return Mouse{}, malformed("mouse event %d position has %d coordinates", i, len(ev.Position))
		}
		if *ev.EvName < int(LeftDown) || *ev.EvName > int(MiddleUp) {
			continue
		}
		a.Events = append(a.Events, MouseEv{
			Kind:      MouseKind(*ev.EvName),
			Position:  Position{X: ev.Position[0], Y: ev.Position[1]},
			Timestamp: *ev.Timestamp,
		})
	}
	return a, nil
}

// WriteKeyboard encodes a to w followed by a newline.
func WriteKeyboard(w io.Writer, a Keyboard) error {
	data, err := EncodeKeyboard(a)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ReadKeyboard decodes a keyboard action from r.
func ReadKeyboard(r io.Reader) (Keyboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Keyboard{}, fmt.Errorf("reading keyboard action: %w", err)
	}
	return DecodeKeyboard(data)
}

// WriteMouse encodes a to w followed by a newline.
func WriteMouse(w io.Writer, a Mouse) error {
	data, err := EncodeMouse(a)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ReadMouse decodes a mouse action from r.
func ReadMouse(r io.Reader) (Mouse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Mouse{}, fmt.Errorf("reading mouse action: %w", err)
	}
	return DecodeMouse(data)
}

// DetectKind inspects the first event of a document to tell keyboard and
// mouse actions apart. An empty action reports KindKeyboard.
func DetectKind(data []byte) (Kind, error) {
	var probe struct {
		Evs []map[string]json.RawMessage `json:"evs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", malformed("detecting action kind: %v", err)
	}
	if len(probe.Evs) == 0 {
		return KindKeyboard, nil
	}
	first := probe.Evs[0]
	if _, ok := first["ev_name"]; ok {
		return KindMouse, nil
	}
	if _, ok := first["code"]; ok {
		return KindKeyboard, nil
	}
	return "", malformed("first event has neither code nor ev_name")
}

// EncodeKeyEv renders a single event in its persisted shape. It reports
// false when the code has no neutral name.
func EncodeKeyEv(ev KeyEv) (json.RawMessage, bool) {
	code, ok := keymap.CaptureToNeutral(ev.Code)
	if !ok {
		return nil, false
	}
	data, err := json.Marshal(keyEvOut{Code: code, Press: ev.Press, Timestamp: ev.Timestamp})
	return data, err == nil
}

// EncodeMouseEv renders a single mouse event in its persisted shape.
func EncodeMouseEv(ev MouseEv) (json.RawMessage, bool) {
	if !ev.Kind.Valid() {
		return nil, false
	}
	data, err := json.Marshal(mouseEvOut{
		EvName:    int(ev.Kind),
		Position:  [2]int{ev.Position.X, ev.Position.Y},
		Timestamp: ev.Timestamp,
	})
	return data, err == nil
}
