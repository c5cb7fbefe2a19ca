package dashboard

import (
	"context"
	"strconv"
	"time"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/financial"
	"fabrica-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	Now() time.Time
	MonthlySummary(ctx context.Context, p ledger.Period) (ledger.MonthlySummary, error)
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
	CashFlow(ctx context.Context, g ledger.Granularity, count int) (ledger.CashFlow, error)
}

// GET /api/dashboard/cash-chart?period=daily&count=7
// period: daily | weekly | monthly
func CashChartHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := ledger.Granularity(c.Query("period", string(ledger.Daily)))

		count := 0
		if s := c.Query("count"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count inválido")
			}
			count = n
		}

		cf, err := store.CashFlow(c.UserContext(), period, count)
		if err != nil {
			return err
		}
		return c.JSON(cf)
	}
}

type PanelResponse struct {
	Month          financial.MonthlySummaryResponse `json:"month"`
	Balance        decimal.Decimal                  `json:"balance"`
	BalanceDisplay string                           `json:"balance_display"`
}

// GET /api/dashboard
// Current month figures plus the accumulated balance.
func PanelHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := store.MonthlySummary(c.UserContext(), ledger.CurrentPeriod(store.Now()))
		if err != nil {
			return err
		}
		balance, err := store.CurrentBalance(c.UserContext())
		if err != nil {
			return err
		}

		return c.JSON(PanelResponse{
			Month:          financial.ToMonthlySummaryResponse(sum),
			Balance:        balance,
			BalanceDisplay: currency.Format(balance),
		})
	}
}
