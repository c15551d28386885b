package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/inject"
	"github.com/SmitUplenchwar2687/Toca/internal/player"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		file       string
		name       string
		kindFlag   string
		speed      float64
		tap        bool
		delay      time.Duration
		from       time.Duration
		to         time.Duration
		dryRun     bool
		backend    string
		outputJSON bool
		store      storageOptions
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Replay a recorded action",
		Long: `Replays a keyboard or mouse action through a virtual input device,
waiting between events exactly as long as they were apart when recorded.

Keys without an injection equivalent are skipped without shifting the
timing of the events around them.

Speed: 0 = no waiting, 1 = real-time, 2 = twice as fast`,
		Example: `  toca play --file hello.json
  toca play --name clicks --kind mouse --speed 2
  toca play --file hello.json --from 2s --to 10s --delay 0
  toca play --file hello.json --dry-run --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (name == "") {
				return fmt.Errorf("exactly one of --file or --name is required")
			}
			if !cmd.Flags().Changed("speed") {
				speed = a.cfg.Player.Speed
			}
			if !cmd.Flags().Changed("tap") {
				tap = a.cfg.Player.Tap
			}
			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Player.StartDelay
			}
			if !cmd.Flags().Changed("backend") {
				backend = a.cfg.Inject.Backend
			}
			if dryRun {
				backend = inject.BackendLog
			}
			if to != 0 && to <= from {
				return fmt.Errorf("--to (%s) must be after --from (%s)", to, from)
			}

			var kind action.Kind
			if kindFlag != "" {
				k, err := action.ParseKind(kindFlag)
				if err != nil {
					return err
				}
				kind = k
			}

			var data []byte
			if file != "" {
				d, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading action file: %w", err)
				}
				data = d
				if kind == "" {
					if kind, err = action.DetectKind(data); err != nil {
						return err
					}
				}
			} else {
				if kind == "" {
					kind = action.KindKeyboard
				}
				err := store.withLibrary(cmd, a, func(lib *storage.Library) error {
					d, err := lib.Document(cmd.Context(), kind, name)
					data = d
					return err
				})
				if err != nil {
					return err
				}
			}

			sink, err := a.backends.OpenSink(inject.Options{
				Backend:    backend,
				DeviceName: a.cfg.Inject.DeviceName,
				Screen:     a.cfg.Inject.Screen,
				Logger:     a.logger,
			})
			if err != nil {
				return fmt.Errorf("opening injection backend: %w", err)
			}
			defer sink.Close()

			opts := []player.Option{
				player.WithSpeed(speed),
				player.WithTapMode(tap),
				player.WithStartDelay(delay),
				player.WithLogger(a.logger),
			}
			fromMs, toMs := uint64(from.Milliseconds()), uint64(to.Milliseconds())

			var summary player.Summary
			switch kind {
			case action.KindKeyboard:
				act, err := action.DecodeKeyboard(data)
				if err != nil {
					return err
				}
				act = act.Window(fromMs, toMs)
				p := player.NewKeyboard(sink, opts...)
				if err := p.Load(act); err != nil {
					return err
				}
				announce(cmd.ErrOrStderr(), kind, len(act.Events), delay, outputJSON)
				if summary, err = p.Play(); err != nil {
					return err
				}
			case action.KindMouse:
				act, err := action.DecodeMouse(data)
				if err != nil {
					return err
				}
				act = act.Window(fromMs, toMs)
				p := player.NewMouse(sink, opts...)
				if err := p.Load(act); err != nil {
					return err
				}
				announce(cmd.ErrOrStderr(), kind, len(act.Events), delay, outputJSON)
				if summary, err = p.Play(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			fmt.Fprintln(out, "--- Playback Summary ---")
			fmt.Fprintf(out, "  Total events:   %d\n", summary.Total)
			fmt.Fprintf(out, "  Injected:       %d\n", summary.Injected)
			fmt.Fprintf(out, "  Skipped:        %d\n", summary.Skipped)
			fmt.Fprintf(out, "  Failed:         %d\n", summary.Failed)
			fmt.Fprintf(out, "  Recorded time:  %s\n", summary.Duration)
			fmt.Fprintf(out, "  Wall time:      %s\n", summary.WallDuration.Round(time.Millisecond))
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d events could not be injected", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to an action JSON file")
	cmd.Flags().StringVar(&name, "name", "", "name of an action in the library")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "action kind (keyboard, mouse); detected from files, defaults to keyboard for --name")
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed (0=no waits, 1=real-time, 2=2x)")
	cmd.Flags().BoolVar(&tap, "tap", false, "send a click per key press and ignore releases")
	cmd.Flags().DurationVar(&delay, "delay", 3*time.Second, "wait before the first event, to focus the target window")
	cmd.Flags().DurationVar(&from, "from", 0, "skip events recorded before this offset")
	cmd.Flags().DurationVar(&to, "to", 0, "stop at this offset (0 = end)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the events instead of injecting them")
	cmd.Flags().StringVar(&backend, "backend", inject.BackendUinput, "injection backend (uinput, robotgo, log)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the summary as JSON")
	store.addFlags(cmd)

	return cmd
}

func announce(w io.Writer, kind action.Kind, events int, delay time.Duration, quiet bool) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "Playing %d %s events", events, kind)
	if delay > 0 {
		fmt.Fprintf(w, " in %s", delay)
	}
	fmt.Fprintln(w, "...")
}
