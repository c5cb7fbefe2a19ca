package financial

import (
	"context"
	"time"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	Now() time.Time
	MonthlySummary(ctx context.Context, p ledger.Period) (ledger.MonthlySummary, error)
}

type MonthlySummaryResponse struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	TotalSales     decimal.Decimal   `json:"total_sales"`
	TotalExpenses  decimal.Decimal   `json:"total_expenses"`
	Balance        decimal.Decimal   `json:"balance"`
	UnitsProduced  int64             `json:"units_produced"`
	CostPerUnit    decimal.Decimal   `json:"cost_per_unit"`
	ProductionCost decimal.Decimal   `json:"production_cost"`
	Display        map[string]string `json:"display"`
}

func ToMonthlySummaryResponse(s ledger.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Year:           s.Period.Year,
		Month:          int(s.Period.Month),
		TotalSales:     s.TotalSales,
		TotalExpenses:  s.TotalExpenses,
		Balance:        s.Balance,
		UnitsProduced:  s.UnitsProduced,
		CostPerUnit:    s.CostPerUnit,
		ProductionCost: s.ProductionCost,
		Display: map[string]string{
			"total_sales":     currency.Format(s.TotalSales),
			"total_expenses":  currency.Format(s.TotalExpenses),
			"balance":         currency.Format(s.Balance),
			"cost_per_unit":   currency.Format(s.CostPerUnit),
			"production_cost": currency.Format(s.ProductionCost),
		},
	}
}

// GET /api/financial-summary/monthly?year=2024&month=3
// Defaults to the current month.
func MonthlySummaryHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := httpx.QueryPeriod(c, store.Now())
		if err != nil {
			return err
		}

		sum, err := store.MonthlySummary(c.UserContext(), p)
		if err != nil {
			return err
		}
		return c.JSON(ToMonthlySummaryResponse(sum))
	}
}
