package player

import (
	"testing"

	"github.com/holoplot/go-evdev"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
)

func TestKeyboardPlayer(t *testing.T) {
	sink := inject.NewVirtualSink(nil)
	p := NewKeyboard(sink, WithSpeed(0))

	err := p.Load(action.Keyboard{
		Events: []action.KeyEv{
			{Code: evdev.KEY_X, Press: true, Timestamp: 0},
			{Code: evdev.KEY_X, Press: false, Timestamp: 30},
		},
		Till: 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	sum, err := p.Play()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Injected != 2 || len(sink.Calls()) != 2 {
		t.Errorf("summary = %+v, calls = %d", sum, len(sink.Calls()))
	}
}
