package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/holoplot/go-evdev"
	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/keymap"
)

func newKeysCmd() *cobra.Command {
	var supportedOnly bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the key translation table",
		Long: `Lists every key code the action format knows, with the Linux input
code it is captured as and the key it is replayed as. Keys marked
"unsupported" are recorded but skipped during playback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tCAPTURE\tPLAYBACK")
			for _, code := range keymap.Codes() {
				capture, ok := keymap.NeutralToCapture(code)
				if !ok {
					continue
				}
				playback := "unsupported"
				if k, ok := keymap.CaptureToInjection(capture); ok {
					playback = string(k)
				} else if supportedOnly {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", code, evdev.CodeName(evdev.EV_KEY, capture), playback)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&supportedOnly, "supported", false, "only list keys that can be replayed")
	return cmd
}
