package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/config"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/logging"
)

// SourceCloser is a capture source that owns devices.
type SourceCloser interface {
	capture.Source
	io.Closer
}

// Backends opens the hardware the commands talk to. Tests swap in virtual
// implementations.
type Backends struct {
	OpenSource func(capture.EvdevOptions) (SourceCloser, error)
	OpenSink   func(inject.Options) (inject.Sink, error)
}

// DefaultBackends uses evdev for capture and inject.Open for injection.
func DefaultBackends() Backends {
	return Backends{
		OpenSource: func(opts capture.EvdevOptions) (SourceCloser, error) {
			src, err := capture.OpenEvdev(opts)
			if err != nil {
				return nil, err
			}
			return src, nil
		},
		OpenSink: inject.Open,
	}
}

// app is the state shared by every command: the resolved config and the
// logger built from it.
type app struct {
	backends Backends

	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

// load resolves the config file and flags. It runs before every command.
func (a *app) load(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if cmd.Flags().Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		a.cfg.Log.Format = a.logFormat
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	format, _ := logging.ParseFormat(a.cfg.Log.Format)
	logger, err := logging.New(logging.Config{
		Level:     a.cfg.Log.Level,
		Format:    format,
		Output:    cmd.ErrOrStderr(),
		Component: "toca",
	})
	if err != nil {
		return err
	}
	a.logger = logger
	slog.SetDefault(logger)
	return nil
}

// NewRootCmd creates the root toca command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(DefaultBackends())
}

func newRootCmd(backends Backends) *cobra.Command {
	a := &app{backends: backends}

	root := &cobra.Command{
		Use:   "toca",
		Short: "Record and replay keyboard and mouse input",
		Long: `Toca records keyboard or mouse input into timestamped actions and
replays them later through a virtual input device, preserving the original
timing between events.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a JSON, YAML or TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(
		newRecordCmd(a),
		newPlayCmd(a),
		newListCmd(a),
		newRmCmd(a),
		newServeCmd(a),
		newKeysCmd(),
		newGenerateCmd(a),
	)

	return root
}
