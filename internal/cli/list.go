package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func newListCmd(a *app) *cobra.Command {
	var (
		outputJSON bool
		store      storageOptions
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the actions in the library",
		Example: `  toca list
  toca list --storage redis --redis-host localhost:6379 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []storage.Entry
			err := store.withLibrary(cmd, a, func(lib *storage.Library) error {
				var err error
				entries, err = lib.List(cmd.Context())
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No saved actions.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tEVENTS\tDURATION\tSAVED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
					e.Kind, e.Name, e.Events,
					time.Duration(e.Till)*time.Millisecond,
					e.SavedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output entries as JSON")
	store.addFlags(cmd)
	return cmd
}
