package storage

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/clock"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleKeyboard() action.Keyboard {
	return action.Keyboard{
		Events: []action.KeyEv{
			{Code: evdev.KEY_H, Press: true, Timestamp: 2065},
			{Code: evdev.KEY_H, Press: false, Timestamp: 2144},
		},
		Till: 6668,
	}
}

func sampleMouse() action.Mouse {
	return action.Mouse{
		Events: []action.MouseEv{
			{Kind: action.LeftDown, Position: action.Position{X: 1953, Y: 367}, Timestamp: 1474},
		},
		Till: 5679,
	}
}

func TestLibrary_SaveLoad(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(NewMemoryStorage(), clock.NewVirtualClock(epoch))

	require.NoError(t, lib.SaveKeyboard(ctx, "hello", sampleKeyboard()))
	require.NoError(t, lib.SaveMouse(ctx, "hello", sampleMouse()))

	kb, err := lib.LoadKeyboard(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, sampleKeyboard(), kb)

	m, err := lib.LoadMouse(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, sampleMouse(), m)
}

func TestLibrary_EntryCountsStoredEvents(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(NewMemoryStorage(), clock.NewVirtualClock(epoch))

	kb := sampleKeyboard()
	kb.Events = append(kb.Events, action.KeyEv{Code: evdev.KEY_MUTE, Press: true, Timestamp: 3000})
	require.NoError(t, lib.SaveKeyboard(ctx, "muted", kb))

	m := sampleMouse()
	m.Events = append(m.Events, action.MouseEv{Kind: action.MouseKind(9), Timestamp: 2000})
	require.NoError(t, lib.SaveMouse(ctx, "odd", m))

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Name] = e.Events
	}
	assert.Equal(t, map[string]int{"muted": 2, "odd": 1}, counts)

	loaded, err := lib.LoadKeyboard(ctx, "muted")
	require.NoError(t, err)
	assert.Len(t, loaded.Events, 2)
}

func TestLibrary_NotFound(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(NewMemoryStorage(), nil)

	_, err := lib.LoadKeyboard(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, lib.SaveKeyboard(ctx, "kb-only", sampleKeyboard()))
	_, err = lib.LoadMouse(ctx, "kb-only")
	assert.ErrorIs(t, err, ErrNotFound, "names are scoped by kind")

	assert.ErrorIs(t, lib.Delete(ctx, action.KindMouse, "kb-only"), ErrNotFound)
}

func TestLibrary_InvalidNames(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(NewMemoryStorage(), nil)

	for _, name := range []string{"", "../etc", "a:b", "with space", "-leading"} {
		err := lib.SaveKeyboard(ctx, name, sampleKeyboard())
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
	assert.NoError(t, lib.SaveKeyboard(ctx, "login_v2.final-1", sampleKeyboard()))
}

func TestLibrary_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	vc := clock.NewVirtualClock(epoch)
	lib := NewLibrary(NewMemoryStorage(), vc)

	require.NoError(t, lib.SaveMouse(ctx, "clicks", sampleMouse()))
	vc.Advance(time.Minute)
	require.NoError(t, lib.SaveKeyboard(ctx, "zeta", sampleKeyboard()))
	require.NoError(t, lib.SaveKeyboard(ctx, "alpha", action.Keyboard{}))

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want := []Entry{
		{Name: "alpha", Kind: action.KindKeyboard, Events: 0, Till: 0, SavedAt: epoch.Add(time.Minute)},
		{Name: "zeta", Kind: action.KindKeyboard, Events: 2, Till: 6668, SavedAt: epoch.Add(time.Minute)},
		{Name: "clicks", Kind: action.KindMouse, Events: 1, Till: 5679, SavedAt: epoch},
	}
	for i, w := range want {
		got := entries[i]
		assert.True(t, w.SavedAt.Equal(got.SavedAt), "entry %d saved at %v, want %v", i, got.SavedAt, w.SavedAt)
		got.SavedAt, w.SavedAt = time.Time{}, time.Time{}
		assert.Equal(t, w, got)
	}

	require.NoError(t, lib.Delete(ctx, action.KindKeyboard, "zeta"))
	entries, err = lib.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLibrary_DocumentIsPersistedShape(t *testing.T) {
	ctx := context.Background()
	lib := NewLibrary(NewMemoryStorage(), nil)
	require.NoError(t, lib.SaveKeyboard(ctx, "hello", sampleKeyboard()))

	doc, err := lib.Document(ctx, action.KindKeyboard, "hello")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"evs":[{"code":"KeyH","press":true,"timestamp":2065},{"code":"KeyH","press":false,"timestamp":2144}],"till":6668}`,
		string(doc))
}

func TestLibrary_ListSkipsForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	lib := NewLibrary(store, nil)

	require.NoError(t, store.Set(ctx, keyPrefix+"joystick:x", []byte("{}")))
	require.NoError(t, store.Set(ctx, "unrelated", []byte("{}")))
	require.NoError(t, lib.SaveKeyboard(ctx, "real", sampleKeyboard()))

	entries, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "real", entries[0].Name)
}

func TestLibrary_FileBackendSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs1, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, NewLibrary(fs1, nil).SaveKeyboard(ctx, "persisted", sampleKeyboard()))

	fs2, err := NewFileStorage(dir)
	require.NoError(t, err)
	got, err := NewLibrary(fs2, nil).LoadKeyboard(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, sampleKeyboard(), got)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "temp files must not be left behind")
}

func TestLibrary_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	require.NoError(t, store.Set(ctx, key(action.KindKeyboard, "bad"), []byte("not json")))

	_, err := NewLibrary(store, nil).LoadKeyboard(ctx, "bad")
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestOpen(t *testing.T) {
	s, err := Open(Config{Backend: BackendMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(Config{Backend: BackendFile, Dir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	_, err = Open(Config{Backend: BackendFile}, nil)
	assert.Error(t, err)

	_, err = Open(Config{Backend: "tape"}, nil)
	assert.Error(t, err)

	_, err = Open(Config{Backend: BackendRedis}, nil)
	assert.Error(t, err, "redis without host must fail validation")
}
