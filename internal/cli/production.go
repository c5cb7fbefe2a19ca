package cli

import (
	"fmt"
	"strconv"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/ledger"

	"github.com/spf13/cobra"
)

func newProductionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Record and list production runs",
	}
	cmd.AddCommand(newProductionRecordCmd(a), newProductionListCmd(a))
	return cmd
}

func newProductionRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a production run and add the units to stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, _ := cmd.Flags().GetUint("product")
			quantity, _ := cmd.Flags().GetInt("quantity")
			cost, err := decimalFlag(cmd, "cost")
			if err != nil {
				return err
			}

			entry, err := a.store.RecordProduction(cmd.Context(), ledger.NewProduction{
				ProductID: productID,
				Quantity:  quantity,
				TotalCost: cost,
			})
			if err != nil {
				return err
			}
			p, err := a.store.Product(cmd.Context(), productID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producción registrada: %d unidades de %s (stock %d)\n", entry.Quantity, p.Name, p.Stock)
			return nil
		},
	}

	f := cmd.Flags()
	f.Uint("product", 0, "Product ID")
	f.Int("quantity", 0, "Units produced")
	f.String("cost", "0", "Total cost of the run in guaraníes")
	return cmd
}

func newProductionListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent production runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := a.store.ListProduction(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.ProducedAt.String(),
					e.ProductName,
					strconv.Itoa(e.Quantity),
					currency.Format(e.TotalCost),
				})
			}
			return printTable(cmd, []string{"Fecha", "Producto", "Cantidad", "Costo"}, rows)
		},
	}
	cmd.Flags().Int("limit", 50, "Maximum rows")
	return cmd
}
