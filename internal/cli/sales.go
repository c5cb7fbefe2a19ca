package cli

import (
	"fmt"
	"strconv"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/ledger"

	"github.com/spf13/cobra"
)

func newSalesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Record and list sales",
	}
	cmd.AddCommand(newSalesRecordCmd(a), newSalesListCmd(a))
	return cmd
}

func newSalesRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a sale, take the units from stock and credit the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, _ := cmd.Flags().GetUint("product")
			quantity, _ := cmd.Flags().GetInt("quantity")
			customer, _ := cmd.Flags().GetString("customer")
			price, err := decimalFlag(cmd, "price")
			if err != nil {
				return err
			}

			sale, err := a.store.RecordSale(cmd.Context(), ledger.NewSale{
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: price,
				Customer:  customer,
			})
			if err != nil {
				return err
			}
			balance, err := a.store.CurrentBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Venta registrada: %s a %s. Saldo: %s\n",
				currency.Format(sale.Total), sale.Customer, currency.Format(balance))
			return nil
		},
	}

	f := cmd.Flags()
	f.Uint("product", 0, "Product ID")
	f.Int("quantity", 0, "Units sold")
	f.String("price", "0", "Unit price in guaraníes")
	f.String("customer", "", "Customer name (default \"Cliente General\")")
	return cmd
}

func newSalesListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			sales, err := a.store.ListSales(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(sales))
			for _, s := range sales {
				rows = append(rows, []string{
					s.SoldAt.String(),
					s.ProductName,
					strconv.Itoa(s.Quantity),
					currency.Format(s.UnitPrice),
					currency.Format(s.Total),
					s.Customer,
				})
			}
			return printTable(cmd, []string{"Fecha", "Producto", "Cantidad", "Precio", "Total", "Cliente"}, rows)
		},
	}
	cmd.Flags().Int("limit", 50, "Maximum rows")
	return cmd
}
