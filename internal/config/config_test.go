package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Recorder.StopKey != "Escape" {
		t.Errorf("default stop key = %q, want Escape", cfg.Recorder.StopKey)
	}
	if cfg.Player.Speed != 1 {
		t.Errorf("default speed = %g, want 1", cfg.Player.Speed)
	}
	if cfg.Player.StartDelay != 3*time.Second {
		t.Errorf("default start delay = %s, want 3s", cfg.Player.StartDelay)
	}
	if cfg.Inject.Backend != inject.BackendUinput {
		t.Errorf("default inject backend = %q, want uinput", cfg.Inject.Backend)
	}
	if cfg.Storage.Backend != storage.BackendFile {
		t.Errorf("default storage backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Dir == "" {
		t.Error("default storage dir should be set")
	}
}

func TestDefault_StorageDirFollowsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	if got := Default().Storage.Dir; got != filepath.Join("/xdg", "toca", "actions") {
		t.Errorf("storage dir = %q", got)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown stop key", func(c *Config) { c.Recorder.StopKey = "Hyper" }},
		{"negative speed", func(c *Config) { c.Player.Speed = -1 }},
		{"negative start delay", func(c *Config) { c.Player.StartDelay = -time.Second }},
		{"negative capture screen", func(c *Config) { c.Capture.Screen.Width = -1 }},
		{"unknown inject backend", func(c *Config) { c.Inject.Backend = "xdotool" }},
		{"uinput without screen", func(c *Config) { c.Inject.Screen.Height = 0 }},
		{"unknown storage backend", func(c *Config) { c.Storage.Backend = "crdt" }},
		{"file without dir", func(c *Config) { c.Storage.Dir = "" }},
		{"redis without host", func(c *Config) {
			c.Storage.Backend = storage.BackendRedis
			c.Storage.Redis.Host = ""
		}},
		{"redis bad port", func(c *Config) {
			c.Storage.Backend = storage.BackendRedis
			c.Storage.Redis.Port = 0
		}},
		{"redis cluster without nodes", func(c *Config) {
			c.Storage.Backend = storage.BackendRedis
			c.Storage.Redis.Cluster = true
		}},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_LogBackendNeedsNoScreen(t *testing.T) {
	cfg := Default()
	cfg.Inject.Backend = inject.BackendLog
	cfg.Inject.Screen = inject.Screen{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("log backend without screen should be valid, got %v", err)
	}
}

func TestLoadFile_FullJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "recorder": { "stop_key": "KEY_F12" },
  "player": { "speed": 0, "tap": true, "start_delay": "500ms" },
  "capture": { "devices": ["/dev/input/event3"], "screen": { "width": 2560, "height": 1440 } },
  "inject": { "backend": "log", "device_name": "bot" },
  "storage": {
    "backend": "redis",
    "redis": {
      "host": "127.0.0.1",
      "port": 6380,
      "password": "secret",
      "db": 2,
      "pool_size": 25,
      "max_retries": 5,
      "dial_timeout": "4s"
    }
  },
  "server": { "addr": ":9090" },
  "log": { "level": "debug", "format": "json" }
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Recorder.StopKey != "KEY_F12" {
		t.Errorf("stop key = %q", cfg.Recorder.StopKey)
	}
	if cfg.Player.Speed != 0 {
		t.Errorf("explicit zero speed should be kept, got %g", cfg.Player.Speed)
	}
	if !cfg.Player.Tap {
		t.Error("tap should be true")
	}
	if cfg.Player.StartDelay != 500*time.Millisecond {
		t.Errorf("start delay = %s, want 500ms", cfg.Player.StartDelay)
	}
	if len(cfg.Capture.Devices) != 1 || cfg.Capture.Devices[0] != "/dev/input/event3" {
		t.Errorf("devices = %v", cfg.Capture.Devices)
	}
	if cfg.Capture.Screen.Width != 2560 || cfg.Capture.Screen.Height != 1440 {
		t.Errorf("capture screen = %+v", cfg.Capture.Screen)
	}
	if cfg.Inject.Backend != inject.BackendLog || cfg.Inject.DeviceName != "bot" {
		t.Errorf("inject = %+v", cfg.Inject)
	}
	if cfg.Storage.Backend != "redis" {
		t.Errorf("storage backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.Redis.Host != "127.0.0.1" || cfg.Storage.Redis.Port != 6380 {
		t.Errorf("redis endpoint = %s:%d, want 127.0.0.1:6380", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port)
	}
	if cfg.Storage.Redis.DB != 2 || cfg.Storage.Redis.PoolSize != 25 || cfg.Storage.Redis.MaxRetries != 5 {
		t.Errorf("redis settings = %+v", cfg.Storage.Redis)
	}
	if cfg.Storage.Redis.DialTimeout != 4*time.Second {
		t.Errorf("redis dial_timeout = %s, want 4s", cfg.Storage.Redis.DialTimeout)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should be valid, got %v", err)
	}
}

func TestLoadFile_PartialYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "player:\n  speed: 2.5\nserver:\n  addr: \":7000\"\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Player.Speed != 2.5 {
		t.Errorf("speed = %g, want 2.5", cfg.Player.Speed)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %q, want :7000", cfg.Server.Addr)
	}
	// Everything else stays default.
	if cfg.Player.StartDelay != 3*time.Second {
		t.Errorf("start delay should stay default, got %s", cfg.Player.StartDelay)
	}
	if cfg.Storage.Backend != storage.BackendFile {
		t.Errorf("storage backend should stay default, got %q", cfg.Storage.Backend)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[recorder]
stop_key = "F10"

[storage]
backend = "memory"

[storage.redis]
cluster = true
cluster_nodes = ["a:7000", "b:7000"]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Recorder.StopKey != "F10" {
		t.Errorf("stop key = %q, want F10", cfg.Recorder.StopKey)
	}
	if cfg.Storage.Backend != storage.BackendMemory {
		t.Errorf("storage backend = %q, want memory", cfg.Storage.Backend)
	}
	if !cfg.Storage.Redis.Cluster || len(cfg.Storage.Redis.ClusterNodes) != 2 {
		t.Errorf("redis cluster = %+v", cfg.Storage.Redis)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/config.json")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFile_BadSyntax(t *testing.T) {
	for name, content := range map[string]string{
		"config.json": "{bad json}",
		"config.yaml": "player: [unclosed",
		"config.toml": "[player\nspeed = ",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, name, content)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "config.ini", "x=1")); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestLoadFile_BadDuration(t *testing.T) {
	path := writeConfig(t, "config.json", `{ "player": { "start_delay": "not-a-duration" } }`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for bad duration")
	}

	path = writeConfig(t, "config.json", `{ "storage": { "redis": { "dial_timeout": "soon" } } }`)
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for bad redis duration")
	}
}

func TestWriteExample(t *testing.T) {
	for _, name := range []string{"example.json", "example.yaml", "example.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := WriteExample(path); err != nil {
				t.Fatal(err)
			}

			// Should be loadable.
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("example config should be valid, got %v", err)
			}
			if cfg.Storage.Dir != "actions" {
				t.Errorf("storage dir = %q, want actions", cfg.Storage.Dir)
			}
		})
	}
}
