package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalogue into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.store.SeedSampleProducts(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "El catálogo ya tiene productos, no se cargaron ejemplos")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productos de ejemplo cargados\n", n)
			return nil
		},
	}
}
