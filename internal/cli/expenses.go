package cli

import (
	"fmt"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/ledger"

	"github.com/spf13/cobra"
)

func newExpensesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Record and list expenses",
	}
	cmd.AddCommand(newExpensesRecordCmd(a), newExpensesListCmd(a))
	return cmd
}

func newExpensesRecordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an expense and debit the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			concept, _ := f.GetString("concept")
			category, _ := f.GetString("category")
			description, _ := f.GetString("description")
			amount, err := decimalFlag(cmd, "amount")
			if err != nil {
				return err
			}

			exp, err := a.store.RecordExpense(cmd.Context(), ledger.NewExpense{
				Concept:     concept,
				Amount:      amount,
				Category:    category,
				Description: description,
			})
			if err != nil {
				return err
			}
			balance, err := a.store.CurrentBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Gasto registrado: %s (%s). Saldo: %s\n",
				exp.Concept, currency.Format(exp.Amount), currency.Format(balance))
			return nil
		},
	}

	f := cmd.Flags()
	f.String("concept", "", "What the money was spent on")
	f.String("amount", "0", "Amount in guaraníes")
	f.String("category", "", "Category (default \"General\")")
	f.String("description", "", "Free text")
	return cmd
}

func newExpensesListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			expenses, err := a.store.ListExpenses(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(expenses))
			for _, e := range expenses {
				rows = append(rows, []string{
					e.SpentAt.String(),
					e.Concept,
					e.Category,
					currency.Format(e.Amount),
				})
			}
			return printTable(cmd, []string{"Fecha", "Concepto", "Categoría", "Monto"}, rows)
		},
	}
	cmd.Flags().Int("limit", 50, "Maximum rows")
	return cmd
}
