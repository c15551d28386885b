package config

import internalconfig "github.com/SmitUplenchwar2687/Toca/internal/config"

// Config is the top-level configuration for toca.
type Config = internalconfig.Config

type (
	RecorderConfig = internalconfig.RecorderConfig
	PlayerConfig   = internalconfig.PlayerConfig
	CaptureConfig  = internalconfig.CaptureConfig
	InjectConfig   = internalconfig.InjectConfig
	ServerConfig   = internalconfig.ServerConfig
	LogConfig      = internalconfig.LogConfig
)

// Default returns a Config with sensible defaults.
func Default() Config {
	return internalconfig.Default()
}

// LoadFile reads a JSON, YAML or TOML config file and merges it with
// defaults.
func LoadFile(path string) (Config, error) {
	return internalconfig.LoadFile(path)
}

// WriteExample writes an example config file to the given path.
func WriteExample(path string) error {
	return internalconfig.WriteExample(path)
}
