// Package config loads toca settings from JSON, YAML or TOML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
	"github.com/SmitUplenchwar2687/Toca/internal/logging"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

// Config is the top-level configuration for toca.
type Config struct {
	Recorder RecorderConfig
	Player   PlayerConfig
	Capture  CaptureConfig
	Inject   InjectConfig
	Storage  storage.Config
	Server   ServerConfig
	Log      LogConfig
}

// RecorderConfig holds recording settings.
type RecorderConfig struct {
	// StopKey ends a recording. Accepts neutral names ("Escape") or evdev
	// names ("KEY_ESC").
	StopKey string
}

// PlayerConfig holds playback settings.
type PlayerConfig struct {
	Speed      float64
	Tap        bool
	StartDelay time.Duration
}

// CaptureConfig selects input devices.
type CaptureConfig struct {
	Devices []string
	Screen  capture.Bounds
}

// InjectConfig selects the injection backend.
type InjectConfig struct {
	Backend    string
	DeviceName string
	Screen     inject.Screen
}

// ServerConfig holds monitor server settings.
type ServerConfig struct {
	Addr string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Recorder: RecorderConfig{StopKey: "Escape"},
		Player: PlayerConfig{
			Speed:      1,
			StartDelay: 3 * time.Second,
		},
		Capture: CaptureConfig{
			Screen: capture.Bounds{Width: 1920, Height: 1080},
		},
		Inject: InjectConfig{
			Backend:    inject.BackendUinput,
			DeviceName: "toca",
			Screen:     inject.Screen{Width: 1920, Height: 1080},
		},
		Storage: storage.Config{
			Backend: storage.BackendFile,
			Dir:     defaultStorageDir(),
			Redis: storage.RedisConfig{
				Host:        "localhost",
				Port:        6379,
				PoolSize:    10,
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
			},
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

func defaultStorageDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "toca", "actions")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "toca", "actions")
	}
	return filepath.Join(".toca", "actions")
}

// Validate checks that the config is valid.
func (c Config) Validate() error {
	if _, err := keymap.ParseCaptureCode(c.Recorder.StopKey); err != nil {
		return fmt.Errorf("recorder.stop_key: %w", err)
	}
	if c.Player.Speed < 0 {
		return fmt.Errorf("player.speed must not be negative, got %g", c.Player.Speed)
	}
	if c.Player.StartDelay < 0 {
		return fmt.Errorf("player.start_delay must not be negative, got %s", c.Player.StartDelay)
	}
	if c.Capture.Screen.Width < 0 || c.Capture.Screen.Height < 0 {
		return fmt.Errorf("capture.screen must not be negative, got %dx%d", c.Capture.Screen.Width, c.Capture.Screen.Height)
	}

	switch c.Inject.Backend {
	case inject.BackendUinput, inject.BackendRobotgo, inject.BackendLog:
	default:
		return fmt.Errorf("unknown inject backend %q, must be one of: uinput, robotgo, log", c.Inject.Backend)
	}
	if c.Inject.Backend == inject.BackendUinput && (c.Inject.Screen.Width <= 0 || c.Inject.Screen.Height <= 0) {
		return fmt.Errorf("inject.screen must be positive for uinput, got %dx%d", c.Inject.Screen.Width, c.Inject.Screen.Height)
	}

	switch c.Storage.Backend {
	case storage.BackendMemory:
	case storage.BackendFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file backend")
		}
	case storage.BackendRedis:
		r := c.Storage.Redis
		if r.Cluster {
			if len(r.ClusterNodes) == 0 {
				return fmt.Errorf("storage.redis.cluster_nodes is required in cluster mode")
			}
		} else {
			if r.Host == "" {
				return fmt.Errorf("storage.redis.host is required")
			}
			if r.Port <= 0 {
				return fmt.Errorf("storage.redis.port must be positive, got %d", r.Port)
			}
		}
		if r.DialTimeout < 0 {
			return fmt.Errorf("storage.redis.dial_timeout must not be negative, got %s", r.DialTimeout)
		}
	default:
		return fmt.Errorf("unknown storage backend %q, must be one of: memory, file, redis", c.Storage.Backend)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// LoadFile reads a config file and merges it with defaults. The format is
// picked from the extension: .json, .yaml/.yml or .toml.
// Fields not specified in the file retain their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var raw rawConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		_, err = toml.Decode(string(data), &raw)
	default:
		return cfg, fmt.Errorf("unsupported config extension %q, use .json, .yaml or .toml", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if err := raw.merge(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// rawConfig is the file representation with string durations. Pointers
// mark fields whose zero value is meaningful.
type rawConfig struct {
	Recorder struct {
		StopKey string `json:"stop_key" yaml:"stop_key" toml:"stop_key"`
	} `json:"recorder" yaml:"recorder" toml:"recorder"`
	Player struct {
		Speed      *float64 `json:"speed" yaml:"speed" toml:"speed"`
		Tap        *bool    `json:"tap" yaml:"tap" toml:"tap"`
		StartDelay string   `json:"start_delay" yaml:"start_delay" toml:"start_delay"`
	} `json:"player" yaml:"player" toml:"player"`
	Capture struct {
		Devices []string  `json:"devices" yaml:"devices" toml:"devices"`
		Screen  rawScreen `json:"screen" yaml:"screen" toml:"screen"`
	} `json:"capture" yaml:"capture" toml:"capture"`
	Inject struct {
		Backend    string    `json:"backend" yaml:"backend" toml:"backend"`
		DeviceName string    `json:"device_name" yaml:"device_name" toml:"device_name"`
		Screen     rawScreen `json:"screen" yaml:"screen" toml:"screen"`
	} `json:"inject" yaml:"inject" toml:"inject"`
	Storage struct {
		Backend string `json:"backend" yaml:"backend" toml:"backend"`
		Dir     string `json:"dir" yaml:"dir" toml:"dir"`
		Redis   struct {
			Host         string   `json:"host" yaml:"host" toml:"host"`
			Port         int      `json:"port" yaml:"port" toml:"port"`
			Password     string   `json:"password" yaml:"password" toml:"password"`
			DB           int      `json:"db" yaml:"db" toml:"db"`
			Cluster      *bool    `json:"cluster" yaml:"cluster" toml:"cluster"`
			ClusterNodes []string `json:"cluster_nodes" yaml:"cluster_nodes" toml:"cluster_nodes"`
			PoolSize     int      `json:"pool_size" yaml:"pool_size" toml:"pool_size"`
			MaxRetries   int      `json:"max_retries" yaml:"max_retries" toml:"max_retries"`
			DialTimeout  string   `json:"dial_timeout" yaml:"dial_timeout" toml:"dial_timeout"`
		} `json:"redis" yaml:"redis" toml:"redis"`
	} `json:"storage" yaml:"storage" toml:"storage"`
	Server struct {
		Addr string `json:"addr" yaml:"addr" toml:"addr"`
	} `json:"server" yaml:"server" toml:"server"`
	Log struct {
		Level  string `json:"level" yaml:"level" toml:"level"`
		Format string `json:"format" yaml:"format" toml:"format"`
	} `json:"log" yaml:"log" toml:"log"`
}

type rawScreen struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

func (raw rawConfig) merge(cfg *Config) error {
	if raw.Recorder.StopKey != "" {
		cfg.Recorder.StopKey = raw.Recorder.StopKey
	}

	if raw.Player.Speed != nil {
		cfg.Player.Speed = *raw.Player.Speed
	}
	if raw.Player.Tap != nil {
		cfg.Player.Tap = *raw.Player.Tap
	}
	if raw.Player.StartDelay != "" {
		d, err := time.ParseDuration(raw.Player.StartDelay)
		if err != nil {
			return fmt.Errorf("parsing player.start_delay: %w", err)
		}
		cfg.Player.StartDelay = d
	}

	if len(raw.Capture.Devices) > 0 {
		cfg.Capture.Devices = raw.Capture.Devices
	}
	if raw.Capture.Screen.Width > 0 {
		cfg.Capture.Screen.Width = raw.Capture.Screen.Width
	}
	if raw.Capture.Screen.Height > 0 {
		cfg.Capture.Screen.Height = raw.Capture.Screen.Height
	}

	if raw.Inject.Backend != "" {
		cfg.Inject.Backend = raw.Inject.Backend
	}
	if raw.Inject.DeviceName != "" {
		cfg.Inject.DeviceName = raw.Inject.DeviceName
	}
	if raw.Inject.Screen.Width > 0 {
		cfg.Inject.Screen.Width = raw.Inject.Screen.Width
	}
	if raw.Inject.Screen.Height > 0 {
		cfg.Inject.Screen.Height = raw.Inject.Screen.Height
	}

	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Dir != "" {
		cfg.Storage.Dir = raw.Storage.Dir
	}
	r := raw.Storage.Redis
	if r.Host != "" {
		cfg.Storage.Redis.Host = r.Host
	}
	if r.Port != 0 {
		cfg.Storage.Redis.Port = r.Port
	}
	if r.Password != "" {
		cfg.Storage.Redis.Password = r.Password
	}
	if r.DB != 0 {
		cfg.Storage.Redis.DB = r.DB
	}
	if r.Cluster != nil {
		cfg.Storage.Redis.Cluster = *r.Cluster
	}
	if len(r.ClusterNodes) > 0 {
		cfg.Storage.Redis.ClusterNodes = r.ClusterNodes
	}
	if r.PoolSize > 0 {
		cfg.Storage.Redis.PoolSize = r.PoolSize
	}
	if r.MaxRetries > 0 {
		cfg.Storage.Redis.MaxRetries = r.MaxRetries
	}
	if r.DialTimeout != "" {
		d, err := time.ParseDuration(r.DialTimeout)
		if err != nil {
			return fmt.Errorf("parsing storage.redis.dial_timeout: %w", err)
		}
		cfg.Storage.Redis.DialTimeout = d
	}

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Log.Format != "" {
		cfg.Log.Format = raw.Log.Format
	}
	return nil
}

const exampleJSON = `{
  "recorder": { "stop_key": "Escape" },
  "player": { "speed": 1, "tap": false, "start_delay": "3s" },
  "capture": {
    "devices": [],
    "screen": { "width": 1920, "height": 1080 }
  },
  "inject": {
    "backend": "uinput",
    "device_name": "toca",
    "screen": { "width": 1920, "height": 1080 }
  },
  "storage": {
    "backend": "file",
    "dir": "actions",
    "redis": { "host": "localhost", "port": 6379, "dial_timeout": "5s" }
  },
  "server": { "addr": ":8080" },
  "log": { "level": "info", "format": "text" }
}
`

const exampleYAML = `recorder:
  stop_key: Escape
player:
  speed: 1
  tap: false
  start_delay: 3s
capture:
  devices: []
  screen: {width: 1920, height: 1080}
inject:
  backend: uinput
  device_name: toca
  screen: {width: 1920, height: 1080}
storage:
  backend: file
  dir: actions
  redis:
    host: localhost
    port: 6379
    dial_timeout: 5s
server:
  addr: ":8080"
log:
  level: info
  format: text
`

const exampleTOML = `[recorder]
stop_key = "Escape"

[player]
speed = 1.0
tap = false
start_delay = "3s"

[capture]
devices = []
screen = { width = 1920, height = 1080 }

[inject]
backend = "uinput"
device_name = "toca"
screen = { width = 1920, height = 1080 }

[storage]
backend = "file"
dir = "actions"

[storage.redis]
host = "localhost"
port = 6379
dial_timeout = "5s"

[server]
addr = ":8080"

[log]
level = "info"
format = "text"
`

// WriteExample writes an example config file to the given path, in the
// format its extension names. Unknown extensions get JSON.
func WriteExample(path string) error {
	example := exampleJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		example = exampleYAML
	case ".toml":
		example = exampleTOML
	}
	return os.WriteFile(path, []byte(example), 0o644)
}
