package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/config"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
	"github.com/SmitUplenchwar2687/Toca/internal/player"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

type virtualDevice struct {
	*capture.VirtualSource
}

func (virtualDevice) Close() error { return nil }

// harness runs commands against a virtual source and sink.
type harness struct {
	src  *capture.VirtualSource
	sink *inject.VirtualSink

	mu       sync.Mutex
	sinkOpts inject.Options
}

func newHarness() *harness {
	return &harness{src: capture.NewVirtualSource(), sink: inject.NewVirtualSink(nil)}
}

func (h *harness) backends() Backends {
	return Backends{
		OpenSource: func(capture.EvdevOptions) (SourceCloser, error) {
			return virtualDevice{h.src}, nil
		},
		OpenSink: func(opts inject.Options) (inject.Sink, error) {
			h.mu.Lock()
			h.sinkOpts = opts
			h.mu.Unlock()
			return h.sink, nil
		},
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(h.backends())
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// start runs a command in the background, for commands that block on
// captured input.
func (h *harness) start(args ...string) (*bytes.Buffer, <-chan error) {
	out := &bytes.Buffer{}
	cmd := newRootCmd(h.backends())
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()
	return out, done
}

func (h *harness) waitSubscribers(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.src.Subscribers() < n {
		if time.Now().After(deadline) {
			t.Fatalf("recorder never subscribed, have %d want %d", h.src.Subscribers(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("command did not finish")
		return nil
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestRecordKeyboard_WritesStdout(t *testing.T) {
	h := newHarness()
	out, done := h.start("record", "keyboard", "--log-level", "error")
	h.waitSubscribers(t, 2)

	h.src.Tap(evdev.KEY_A)
	h.src.Press(evdev.KEY_ESC)
	if err := waitDone(t, done); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	a, err := action.DecodeKeyboard(out.Bytes())
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(a.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(a.Events))
	}
	if a.Events[0].Code != evdev.KEY_A || !a.Events[0].Press || a.Events[1].Press {
		t.Errorf("events = %+v", a.Events)
	}
	if h.src.Subscribers() != 0 {
		t.Error("subscriptions should be released")
	}
}

func TestRecordKeyboard_CustomStopKeyAndFile(t *testing.T) {
	h := newHarness()
	output := filepath.Join(t.TempDir(), "out.json")
	_, done := h.start("record", "keyboard", "--stop", "F12", "--output", output)
	h.waitSubscribers(t, 2)

	h.src.Tap(evdev.KEY_ESC)
	h.src.Press(evdev.KEY_F12)
	if err := waitDone(t, done); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	a, err := action.DecodeKeyboard(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Events) != 2 || a.Events[0].Code != evdev.KEY_ESC {
		t.Errorf("escape should be recorded when it is not the stop key, got %+v", a.Events)
	}
}

func TestRecordMouse_SaveAndList(t *testing.T) {
	h := newHarness()
	dir := t.TempDir()
	_, done := h.start("record", "mouse", "--save", "clicks", "--storage-dir", dir)
	h.waitSubscribers(t, 3)

	h.src.SetPointer(action.Position{X: 10, Y: 20})
	h.src.ButtonPress(evdev.BTN_LEFT)
	h.src.ButtonRelease(evdev.BTN_LEFT)
	h.src.Press(evdev.KEY_ESC)
	if err := waitDone(t, done); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	out, err := h.run(t, "list", "--storage-dir", dir, "--json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var entries []storage.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decoding list output: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "clicks" || entries[0].Kind != action.KindMouse || entries[0].Events != 2 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecord_InvalidArgs(t *testing.T) {
	h := newHarness()
	if _, err := h.run(t, "record", "touchpad"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := h.run(t, "record", "keyboard", "--stop", "Hyper"); err == nil {
		t.Error("expected error for unknown stop key")
	}
}

const helloAction = `{"evs":[{"code":"KeyH","press":true,"timestamp":0},{"code":"KeyH","press":false,"timestamp":40},{"code":"Insert","press":true,"timestamp":60},{"code":"KeyI","press":true,"timestamp":100},{"code":"KeyI","press":false,"timestamp":140}],"till":300}`

func TestPlay_File(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)

	out, err := h.run(t, "play", "--file", path, "--delay", "0", "--speed", "0", "--json")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	var summary player.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if summary.Total != 5 || summary.Injected != 4 || summary.Skipped != 1 {
		t.Errorf("summary = %+v", summary)
	}

	var keys []string
	for _, c := range h.sink.Calls() {
		keys = append(keys, string(c.Op)+":"+string(c.Key))
	}
	want := "KeyDown:h KeyUp:h KeyDown:i KeyUp:i"
	if got := strings.Join(keys, " "); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
	if !h.sink.Closed() {
		t.Error("sink should be closed after playback")
	}
}

func TestPlay_Window(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)

	_, err := h.run(t, "play", "--file", path, "--delay", "0", "--speed", "0", "--from", "100ms", "--json")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	calls := h.sink.Calls()
	if len(calls) != 2 || calls[0].Key != "i" {
		t.Errorf("calls = %+v, want only the i events", calls)
	}
}

func TestPlay_TapMode(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)

	out, err := h.run(t, "play", "--file", path, "--delay", "0", "--speed", "0", "--tap")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	for _, c := range h.sink.Calls() {
		if c.Op != inject.OpKeyClick {
			t.Errorf("tap mode should only click, got %s", c.Op)
		}
	}
	if !strings.Contains(out, "Playback Summary") {
		t.Errorf("expected a text summary, got %q", out)
	}
}

func TestPlay_MouseFromLibrary(t *testing.T) {
	h := newHarness()
	dir := t.TempDir()
	_, err := h.run(t, "generate", "clicks", "--count", "2", "--seed", "3", "--save", "two", "--storage-dir", dir)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = h.run(t, "play", "--name", "two", "--kind", "mouse", "--storage-dir", dir, "--delay", "0", "--speed", "0", "--json")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	var ops []inject.Op
	for _, c := range h.sink.Calls() {
		ops = append(ops, c.Op)
	}
	want := []inject.Op{
		inject.OpMoveTo, inject.OpButtonDown, inject.OpMoveTo, inject.OpButtonUp,
		inject.OpMoveTo, inject.OpButtonDown, inject.OpMoveTo, inject.OpButtonUp,
	}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d = %s, want %s", i, ops[i], want[i])
		}
	}
}

func TestPlay_LoadsConfigFile(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)
	configPath := writeFile(t, "toca.yaml", `
player:
  speed: 0
  start_delay: 0s
inject:
  backend: log
  device_name: test-device
`)

	if _, err := h.run(t, "play", "--file", path, "--config", configPath, "--json"); err != nil {
		t.Fatalf("play with config failed: %v", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sinkOpts.Backend != inject.BackendLog || h.sinkOpts.DeviceName != "test-device" {
		t.Errorf("sink options = %+v", h.sinkOpts)
	}
}

func TestPlay_DryRunForcesLogBackend(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)

	if _, err := h.run(t, "play", "--file", path, "--delay", "0", "--speed", "0", "--backend", "uinput", "--dry-run"); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if h.sinkOpts.Backend != inject.BackendLog {
		t.Errorf("backend = %q, want log", h.sinkOpts.Backend)
	}
}

func TestPlay_FailedInjectionIsAnError(t *testing.T) {
	h := newHarness()
	h.sink.FailWith(func(c inject.Call) error {
		if c.Key == "i" {
			return errors.New("device gone")
		}
		return nil
	})
	path := writeFile(t, "hello.json", helloAction)

	if _, err := h.run(t, "play", "--file", path, "--delay", "0", "--speed", "0"); err == nil {
		t.Error("expected error when events fail to inject")
	}
}

func TestPlay_InvalidArgs(t *testing.T) {
	h := newHarness()
	path := writeFile(t, "hello.json", helloAction)

	tests := [][]string{
		{"play"},
		{"play", "--file", path, "--name", "x"},
		{"play", "--file", path, "--kind", "touchpad"},
		{"play", "--file", path, "--from", "2s", "--to", "1s"},
		{"play", "--file", writeFile(t, "bad.json", `{"evs":[]}`)},
		{"play", "--name", "missing", "--storage-dir", t.TempDir()},
	}
	for _, args := range tests {
		if _, err := h.run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRm(t *testing.T) {
	h := newHarness()
	dir := t.TempDir()
	if _, err := h.run(t, "generate", "text", "hi", "--save", "hi", "--storage-dir", dir); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out, err := h.run(t, "rm", "keyboard", "hi", "--storage-dir", dir)
	if err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	if !strings.Contains(out, "Deleted keyboard/hi") {
		t.Errorf("output = %q", out)
	}

	_, err = h.run(t, "rm", "keyboard", "hi", "--storage-dir", dir)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second rm error = %v, want ErrNotFound", err)
	}
}

func TestList_Empty(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "list", "--storage-dir", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No saved actions") {
		t.Errorf("output = %q", out)
	}
}

func TestKeys(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "keys")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "KeyA") || !strings.Contains(out, "KEY_A") {
		t.Error("table should list KeyA with its capture name")
	}
	if !strings.Contains(out, "unsupported") {
		t.Error("table should mark keys that cannot be replayed")
	}

	out, err = h.run(t, "keys", "--supported")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "unsupported") {
		t.Error("--supported should hide unsupported keys")
	}
}

func TestGenerateText_Stdout(t *testing.T) {
	h := newHarness()
	out, err := h.run(t, "generate", "text", "Hi", "--seed", "1", "--tail", "0")
	if err != nil {
		t.Fatal(err)
	}
	a, err := action.DecodeKeyboard([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	// shift down, H down, H up, shift up, I down, I up
	if len(a.Events) != 6 {
		t.Fatalf("got %d events, want 6", len(a.Events))
	}
	if a.Events[0].Code != keymap.CaptureCode(evdev.KEY_LEFTSHIFT) {
		t.Errorf("first event = %+v, want shift down", a.Events[0])
	}
}

func TestGenerateConfig(t *testing.T) {
	h := newHarness()
	path := filepath.Join(t.TempDir(), "toca.toml")
	if _, err := h.run(t, "generate", "config", "--output", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("generated config should be valid, got %v", err)
	}
}

func TestRoot_InvalidConfig(t *testing.T) {
	h := newHarness()
	configPath := writeFile(t, "toca.json", `{"log": {"level": "loud"}}`)
	if _, err := h.run(t, "keys", "--config", configPath); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := h.run(t, "keys", "--log-format", "xml"); err == nil {
		t.Error("expected error for invalid log format")
	}
}

func TestNormalizeRedisHostPort(t *testing.T) {
	host, port, err := normalizeRedisHostPort("localhost:6380", 6379)
	if err != nil {
		t.Fatalf("normalizeRedisHostPort() error = %v", err)
	}
	if host != "localhost" || port != 6380 {
		t.Fatalf("normalizeRedisHostPort() = %s:%d, want localhost:6380", host, port)
	}

	host, port, err = normalizeRedisHostPort("redis.internal", 6379)
	if err != nil {
		t.Fatalf("normalizeRedisHostPort() error = %v", err)
	}
	if host != "redis.internal" || port != 6379 {
		t.Fatalf("normalizeRedisHostPort() = %s:%d, want redis.internal:6379", host, port)
	}
}

func TestNormalizeRedisHostPort_Invalid(t *testing.T) {
	if _, _, err := normalizeRedisHostPort("", 6379); err == nil {
		t.Fatal("expected error for empty host")
	}
	if _, _, err := normalizeRedisHostPort("localhost", 0); err == nil {
		t.Fatal("expected error for non-positive port")
	}
}
