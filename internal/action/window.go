package action

// Window returns the part of a recording between from (inclusive) and to
// (exclusive), in milliseconds, rebased so that from becomes zero. A zero
// to means "until the end". Till is clipped to the window.
func (a Keyboard) Window(from, to uint64) Keyboard {
	out := Keyboard{Events: []KeyEv{}}
	for _, ev := range a.Events {
		if inWindow(ev.Timestamp, from, to) {
			ev.Timestamp -= from
			out.Events = append(out.Events, ev)
		}
	}
	out.Till = clipTill(a.Till, from, to)
	return out
}

// Window is the mouse counterpart of Keyboard.Window.
func (a Mouse) Window(from, to uint64) Mouse {
	out := Mouse{Events: []MouseEv{}}
	for _, ev := range a.Events {
		if inWindow(ev.Timestamp, from, to) {
			ev.Timestamp -= from
			out.Events = append(out.Events, ev)
		}
	}
	out.Till = clipTill(a.Till, from, to)
	return out
}

func inWindow(ts, from, to uint64) bool {
	if ts < from {
		return false
	}
	if to != 0 && ts >= to {
		return false
	}
	return true
}

func clipTill(till, from, to uint64) uint64 {
	if to != 0 && till > to {
		till = to
	}
	if till < from {
		return 0
	}
	return till - from
}
