// Package action exposes the recorded event model and its JSON form.
package action

import (
	"io"

	internalaction "github.com/SmitUplenchwar2687/Toca/internal/action"
)

// Kind names the device class an action was recorded from.
type Kind = internalaction.Kind

const (
	KindKeyboard = internalaction.KindKeyboard
	KindMouse    = internalaction.KindMouse
)

type (
	KeyEv     = internalaction.KeyEv
	MouseEv   = internalaction.MouseEv
	MouseKind = internalaction.MouseKind
	Position  = internalaction.Position
	Keyboard  = internalaction.Keyboard
	Mouse     = internalaction.Mouse
)

const (
	LeftDown   = internalaction.LeftDown
	LeftUp     = internalaction.LeftUp
	RightDown  = internalaction.RightDown
	RightUp    = internalaction.RightUp
	MiddleDown = internalaction.MiddleDown
	MiddleUp   = internalaction.MiddleUp
)

// ErrMalformed is returned when a document does not have the action shape.
var ErrMalformed = internalaction.ErrMalformed

// EncodeKeyboard renders a keyboard action. Unmappable codes are left out.
func EncodeKeyboard(a Keyboard) ([]byte, error) {
	return internalaction.EncodeKeyboard(a)
}

// DecodeKeyboard parses a keyboard action, dropping unknown codes.
func DecodeKeyboard(data []byte) (Keyboard, error) {
	return internalaction.DecodeKeyboard(data)
}

// EncodeMouse renders a mouse action.
func EncodeMouse(a Mouse) ([]byte, error) {
	return internalaction.EncodeMouse(a)
}

// DecodeMouse parses a mouse action, dropping unknown ev_name values.
func DecodeMouse(data []byte) (Mouse, error) {
	return internalaction.DecodeMouse(data)
}

func ReadKeyboard(r io.Reader) (Keyboard, error) {
	return internalaction.ReadKeyboard(r)
}

func WriteKeyboard(w io.Writer, a Keyboard) error {
	return internalaction.WriteKeyboard(w, a)
}

func ReadMouse(r io.Reader) (Mouse, error) {
	return internalaction.ReadMouse(r)
}

func WriteMouse(w io.Writer, a Mouse) error {
	return internalaction.WriteMouse(w, a)
}

// DetectKind tells keyboard and mouse documents apart.
func DetectKind(data []byte) (Kind, error) {
	return internalaction.DetectKind(data)
}

func ParseKind(s string) (Kind, error) {
	return internalaction.ParseKind(s)
}
