package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/config"
	"github.com/SmitUplenchwar2687/Toca/internal/generate"
	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sample actions and config",
		Long: `Generates sample data for testing and experimentation.

Use "generate text" to create a keyboard action that types a string.
Use "generate clicks" to create a mouse action of random clicks.
Use "generate config" to create an example config file.`,
	}

	cmd.AddCommand(newGenerateTextCmd(a), newGenerateClicksCmd(a), newGenerateConfigCmd())
	return cmd
}

func newGenerateTextCmd(a *app) *cobra.Command {
	var (
		output string
		save   string
		opts   = generate.DefaultTypingOptions()
		store  storageOptions
	)

	cmd := &cobra.Command{
		Use:   "text <text>",
		Short: "Generate a keyboard action that types text",
		Long: `Creates a keyboard action that types the given text on a US layout.
Uppercase letters and shifted symbols are typed with shift held.`,
		Example: `  toca generate text "Hello, World!" --output hello.json
  toca generate text "ls -la" --interval 80ms --jitter 30ms --save ls`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := generate.TypeText(strings.Join(args, " "), opts)
			if err != nil {
				return err
			}
			doc, err := action.EncodeKeyboard(act)
			if err != nil {
				return err
			}
			if save != "" {
				err := store.withLibrary(cmd, a, func(lib *storage.Library) error {
					return lib.SaveKeyboard(cmd.Context(), save, act)
				})
				if err != nil {
					return err
				}
			}
			if err := writeDocument(cmd, output, save, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d keyboard events over %s\n",
				len(act.Events), time.Duration(act.Till)*time.Millisecond)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&save, "save", "", "save the action to the library under this name")
	cmd.Flags().DurationVar(&opts.Interval, "interval", opts.Interval, "time between keystrokes")
	cmd.Flags().DurationVar(&opts.Hold, "hold", opts.Hold, "how long each key stays down")
	cmd.Flags().DurationVar(&opts.Jitter, "jitter", opts.Jitter, "random variation of the interval")
	cmd.Flags().DurationVar(&opts.Lead, "lead", opts.Lead, "idle time before the first keystroke")
	cmd.Flags().DurationVar(&opts.Tail, "tail", opts.Tail, "idle time after the last keystroke")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for jitter (0 = time based)")
	store.addFlags(cmd)
	return cmd
}

func newGenerateClicksCmd(a *app) *cobra.Command {
	var (
		output string
		save   string
		button string
		opts   = generate.DefaultClickOptions()
		store  storageOptions
	)

	cmd := &cobra.Command{
		Use:     "clicks",
		Short:   "Generate a mouse action of random clicks",
		Example: `  toca generate clicks --count 20 --interval 500ms --output clicks.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Button = keymap.Button(button)
			if !cmd.Flags().Changed("width") {
				opts.Width = a.cfg.Inject.Screen.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.Height = a.cfg.Inject.Screen.Height
			}
			act, err := generate.Clicks(opts)
			if err != nil {
				return err
			}
			doc, err := action.EncodeMouse(act)
			if err != nil {
				return err
			}
			if save != "" {
				err := store.withLibrary(cmd, a, func(lib *storage.Library) error {
					return lib.SaveMouse(cmd.Context(), save, act)
				})
				if err != nil {
					return err
				}
			}
			if err := writeDocument(cmd, output, save, doc); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d clicks over %s\n",
				opts.Count, time.Duration(act.Till)*time.Millisecond)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&save, "save", "", "save the action to the library under this name")
	cmd.Flags().IntVar(&opts.Count, "count", opts.Count, "number of clicks")
	cmd.Flags().DurationVar(&opts.Interval, "interval", opts.Interval, "time between clicks")
	cmd.Flags().DurationVar(&opts.Hold, "hold", opts.Hold, "how long the button stays down")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "screen width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "screen height")
	cmd.Flags().StringVar(&button, "button", string(keymap.ButtonLeft), "button to click (left, right, center)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for positions (0 = time based)")
	store.addFlags(cmd)
	return cmd
}

func newGenerateConfigCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate an example config file",
		Long: `Writes an example config. The format follows the file extension:
.json, .yaml/.yml or .toml.`,
		Example: `  toca generate config --output toca.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteExample(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated example config at %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "toca.json", "output file path")
	return cmd
}

// writeDocument writes doc to output, or to stdout when neither a file nor
// a library name was given.
func writeDocument(cmd *cobra.Command, output, save string, doc []byte) error {
	doc = append(doc, '\n')
	switch {
	case output != "":
		if err := os.WriteFile(output, doc, 0o644); err != nil {
			return fmt.Errorf("writing action: %w", err)
		}
	case save == "":
		if _, err := cmd.OutOrStdout().Write(doc); err != nil {
			return err
		}
	}
	return nil
}
