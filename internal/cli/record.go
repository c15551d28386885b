package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/capture"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
	"github.com/SmitUplenchwar2687/Toca/internal/recorder"
	"github.com/SmitUplenchwar2687/Toca/internal/server"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func newRecordCmd(a *app) *cobra.Command {
	var (
		output  string
		save    string
		stopKey string
		devices []string
		monitor string
		store   storageOptions
	)

	cmd := &cobra.Command{
		Use:   "record <keyboard|mouse>",
		Short: "Record keyboard or mouse input until the stop key is pressed",
		Long: `Captures key or button transitions from the Linux input devices and
writes them as a timestamped action. Recording ends when the stop key is
pressed (Escape by default); the stop key itself is not recorded.

Mouse recordings store left, right and middle button transitions together
with the pointer position at the moment of each transition.

Without --output or --save the action is written to stdout.`,
		Example: `  toca record keyboard --output hello.json
  toca record mouse --save clicks --stop F12
  toca record keyboard --device /dev/input/event3 --monitor :8080`,
		ValidArgs: []string{string(action.KindKeyboard), string(action.KindMouse)},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := action.ParseKind(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("stop") {
				stopKey = a.cfg.Recorder.StopKey
			}
			if !cmd.Flags().Changed("device") {
				devices = a.cfg.Capture.Devices
			}
			stop, err := keymap.ParseCaptureCode(stopKey)
			if err != nil {
				return fmt.Errorf("invalid --stop: %w", err)
			}

			bounds := a.cfg.Capture.Screen
			src, err := a.backends.OpenSource(capture.EvdevOptions{
				Paths:  devices,
				Bounds: bounds,
				Origin: action.Position{X: bounds.Width / 2, Y: bounds.Height / 2},
				Logger: a.logger,
			})
			if err != nil {
				return fmt.Errorf("opening capture devices: %w", err)
			}
			defer src.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			opts := []recorder.Option{recorder.WithLogger(a.logger)}
			if monitor != "" {
				srv := server.New(monitor, server.Options{Logger: a.logger})
				go func() {
					if err := srv.Start(); err != nil {
						a.logger.Error("monitor server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
				opts = append(opts, recorder.WithObserver(srv.Hub().Observer()))
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Recording %s input, press %s to stop...\n", kind, keymap.CaptureName(stop))

			var doc []byte
			var events int
			var till uint64
			switch kind {
			case action.KindKeyboard:
				var act action.Keyboard
				act, err = recorder.NewKeyboard(src, opts...).Record(ctx, stop)
				events, till = len(act.Events), act.Till
				if err == nil {
					doc, err = action.EncodeKeyboard(act)
				}
				if err == nil && save != "" {
					err = store.withLibrary(cmd, a, func(lib *storage.Library) error {
						return lib.SaveKeyboard(cmd.Context(), save, act)
					})
				}
			case action.KindMouse:
				var act action.Mouse
				act, err = recorder.NewMouse(src, opts...).Record(ctx, stop)
				events, till = len(act.Events), act.Till
				if err == nil {
					doc, err = action.EncodeMouse(act)
				}
				if err == nil && save != "" {
					err = store.withLibrary(cmd, a, func(lib *storage.Library) error {
						return lib.SaveMouse(cmd.Context(), save, act)
					})
				}
			}
			if errors.Is(err, context.Canceled) {
				a.logger.Warn("recording interrupted, nothing saved", "events", events)
				return nil
			}
			if err != nil {
				return err
			}

			if err := writeDocument(cmd, output, save, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Recorded %d events over %s\n", events, time.Duration(till)*time.Millisecond)
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "  Written to: %s\n", output)
			}
			if save != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "  Saved as:   %s/%s\n", kind, save)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the action to this file")
	cmd.Flags().StringVar(&save, "save", "", "save the action to the library under this name")
	cmd.Flags().StringVar(&stopKey, "stop", "Escape", "key that ends the recording")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "input device paths (default: every keyboard-capable device)")
	cmd.Flags().StringVar(&monitor, "monitor", "", "serve a live view of captured events on this address")
	store.addFlags(cmd)

	return cmd
}
