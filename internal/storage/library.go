package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/clock"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

const keyPrefix = "toca:action:"

// ErrInvalidName is returned for names that cannot be used as library keys.
var ErrInvalidName = errors.New("invalid action name")

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Entry describes a stored action without its events.
type Entry struct {
	Name    string      `json:"name"`
	Kind    action.Kind `json:"kind"`
	Events  int         `json:"events"`
	Till    uint64      `json:"till"`
	SavedAt time.Time   `json:"saved_at"`
}

// record is the stored value: the entry plus the action document in its
// persisted form.
type record struct {
	Entry
	Action json.RawMessage `json:"action"`
}

// Library stores named keyboard and mouse actions. Names are scoped by
// kind, so a keyboard and a mouse action may share a name.
type Library struct {
	store Storage
	clock clock.Clock
}

// NewLibrary wraps store. A nil clock uses the real clock.
func NewLibrary(store Storage, c clock.Clock) *Library {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &Library{store: store, clock: c}
}

func key(kind action.Kind, name string) string {
	return keyPrefix + string(kind) + ":" + name
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w %q: use letters, digits, '.', '_' or '-'", ErrInvalidName, name)
	}
	return nil
}

func (l *Library) save(ctx context.Context, kind action.Kind, name string, doc []byte, events int, till uint64) error {
	if err := checkName(name); err != nil {
		return err
	}
	rec := record{
		Entry: Entry{
			Name:    name,
			Kind:    kind,
			Events:  events,
			Till:    till,
			SavedAt: l.clock.Now().UTC(),
		},
		Action: doc,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding library record: %w", err)
	}
	return l.store.Set(ctx, key(kind, name), data)
}

func (l *Library) load(ctx context.Context, kind action.Kind, name string) (record, error) {
	if err := checkName(name); err != nil {
		return record{}, err
	}
	data, err := l.store.Get(ctx, key(kind, name))
	if err != nil {
		return record{}, err
	}
	if data == nil {
		return record{}, fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("decoding library record %q: %w", name, err)
	}
	return rec, nil
}

// SaveKeyboard stores a under name, replacing any previous action.
func (l *Library) SaveKeyboard(ctx context.Context, name string, a action.Keyboard) error {
	doc, err := action.EncodeKeyboard(a)
	if err != nil {
		return err
	}
	stored := 0
	for _, ev := range a.Events {
		if _, ok := keymap.CaptureToNeutral(ev.Code); ok {
			stored++
		}
	}
	return l.save(ctx, action.KindKeyboard, name, doc, stored, a.Till)
}

// SaveMouse stores a under name, replacing any previous action.
func (l *Library) SaveMouse(ctx context.Context, name string, a action.Mouse) error {
	doc, err := action.EncodeMouse(a)
	if err != nil {
		return err
	}
	stored := 0
	for _, ev := range a.Events {
		if ev.Kind.Valid() {
			stored++
		}
	}
	return l.save(ctx, action.KindMouse, name, doc, stored, a.Till)
}

// LoadKeyboard returns the keyboard action saved under name.
func (l *Library) LoadKeyboard(ctx context.Context, name string) (action.Keyboard, error) {
	rec, err := l.load(ctx, action.KindKeyboard, name)
	if err != nil {
		return action.Keyboard{}, err
	}
	return action.DecodeKeyboard(rec.Action)
}

// LoadMouse returns the mouse action saved under name.
func (l *Library) LoadMouse(ctx context.Context, name string) (action.Mouse, error) {
	rec, err := l.load(ctx, action.KindMouse, name)
	if err != nil {
		return action.Mouse{}, err
	}
	return action.DecodeMouse(rec.Action)
}

// Document returns the stored action document exactly as persisted.
func (l *Library) Document(ctx context.Context, kind action.Kind, name string) ([]byte, error) {
	rec, err := l.load(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	return rec.Action, nil
}

// List returns every entry ordered by kind then name.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	keys, err := l.store.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		rest := strings.TrimPrefix(k, keyPrefix)
		kindStr, name, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		kind, err := action.ParseKind(kindStr)
		if err != nil {
			continue
		}
		rec, err := l.load(ctx, kind, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, rec.Entry)
	}
	return entries, nil
}

// Delete removes an entry. It returns ErrNotFound if there is none.
func (l *Library) Delete(ctx context.Context, kind action.Kind, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	k := key(kind, name)
	data, err := l.store.Get(ctx, k)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%s %q: %w", kind, name, ErrNotFound)
	}
	return l.store.Delete(ctx, k)
}
