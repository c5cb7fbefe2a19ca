package cli

import (
	"fmt"
	"os"
	"strconv"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/inventory"
	"fabrica-backend/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalogue",
	}
	cmd.AddCommand(newProductsListCmd(a), newProductsAddCmd(a), newProductsImportCmd(a))
	return cmd
}

func newProductsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products with their stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.store.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(p.ID), 10),
					p.Code,
					p.Name,
					strconv.Itoa(p.Stock),
					currency.Format(p.SalePrice),
					currency.Format(p.UnitCost),
					p.Category,
				})
			}
			return printTable(cmd, []string{"ID", "Código", "Nombre", "Stock", "Precio", "Costo", "Categoría"}, rows)
		},
	}
}

func newProductsAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			name, _ := f.GetString("name")
			code, _ := f.GetString("code")
			stock, _ := f.GetInt("stock")
			category, _ := f.GetString("category")
			price, err := decimalFlag(cmd, "price")
			if err != nil {
				return err
			}
			cost, err := decimalFlag(cmd, "cost")
			if err != nil {
				return err
			}

			id, err := a.store.AddProduct(cmd.Context(), ledger.NewProduct{
				Name:      name,
				Code:      code,
				Stock:     stock,
				SalePrice: price,
				UnitCost:  cost,
				Category:  category,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto %s agregado (ID %d)\n", code, id)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("name", "", "Product name")
	f.String("code", "", "Unique product code")
	f.Int("stock", 0, "Initial stock")
	f.String("price", "0", "Sale price in guaraníes")
	f.String("cost", "0", "Unit cost in guaraníes")
	f.String("category", "", "Category")
	return cmd
}

func newProductsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Import products from a spreadsheet",
		Long: `Import products from the first sheet of an .xlsx file. Columns are
name, code, stock, sale price, unit cost and category. A header row is skipped.
The import is all-or-nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open spreadsheet: %w", err)
			}
			defer f.Close()

			rows, err := inventory.ParseProductSheet(f)
			if err != nil {
				return err
			}
			n, err := a.store.ImportProducts(cmd.Context(), rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productos importados\n", n)
			return nil
		},
	}
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", ledger.ErrInvalidArgument, name, raw)
	}
	return d, nil
}
