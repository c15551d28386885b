package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Toca/internal/action"
	"github.com/SmitUplenchwar2687/Toca/internal/storage"
)

func newRmCmd(a *app) *cobra.Command {
	var store storageOptions

	cmd := &cobra.Command{
		Use:     "rm <keyboard|mouse> <name>",
		Short:   "Delete an action from the library",
		Example: `  toca rm keyboard hello`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := action.ParseKind(args[0])
			if err != nil {
				return err
			}
			err = store.withLibrary(cmd, a, func(lib *storage.Library) error {
				return lib.Delete(cmd.Context(), kind, args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", kind, args[1])
			return nil
		},
	}

	store.addFlags(cmd)
	return cmd
}
