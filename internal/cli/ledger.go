package cli

import (
	"fmt"
	"strconv"
	"time"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/ledger"

	"github.com/spf13/cobra"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the accumulated balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := a.store.CurrentBalance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saldo total: %s\n", currency.Format(balance))
			return nil
		},
	}
}

func newMovementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "List ledger movements, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			movements, err := a.store.ListMovements(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(movements))
			for _, m := range movements {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(m.ID), 10),
					m.RecordedAt.String(),
					string(m.Type),
					m.Concept,
					currency.Format(m.Amount),
					currency.Format(m.Balance),
				})
			}
			return printTable(cmd, []string{"ID", "Fecha", "Tipo", "Concepto", "Monto", "Saldo"}, rows)
		},
	}
	cmd.Flags().Int("limit", 50, "Maximum rows")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the summary of a calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := periodFromFlags(cmd, a.store.Now())
			if err != nil {
				return err
			}
			sum, err := a.store.MonthlySummary(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printTable(cmd, []string{"Concepto", "Valor"}, [][]string{
				{"Período", p.String()},
				{"Ventas", currency.Format(sum.TotalSales)},
				{"Gastos", currency.Format(sum.TotalExpenses)},
				{"Balance", currency.Format(sum.Balance)},
				{"Unidades producidas", strconv.FormatInt(sum.UnitsProduced, 10)},
				{"Costo por unidad", currency.Format(sum.CostPerUnit)},
			})
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "Year (default current)")
	cmd.Flags().Int("month", 0, "Month 1-12 (default current)")
}

func periodFromFlags(cmd *cobra.Command, now time.Time) (ledger.Period, error) {
	p := ledger.CurrentPeriod(now)
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		p.Year = year
	}
	if month, _ := cmd.Flags().GetInt("month"); month != 0 {
		p.Month = time.Month(month)
	}
	return p, p.Validate()
}
