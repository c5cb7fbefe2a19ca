package cashflow

import (
	"context"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	ListMovements(ctx context.Context, limit int) ([]models.LedgerMovement, error)
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

type MovementResponse struct {
	ID             uint                `json:"id"`
	RecordedAt     string              `json:"recorded_at"`
	Type           models.MovementType `json:"type"`
	Concept        string              `json:"concept"`
	Amount         decimal.Decimal     `json:"amount"`
	AmountDisplay  string              `json:"amount_display"`
	Balance        decimal.Decimal     `json:"balance"`
	BalanceDisplay string              `json:"balance_display"`
	SourceType     string              `json:"source_type"`
	SourceID       uint                `json:"source_id"`
}

type BalanceResponse struct {
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
}

// GET /api/ledger/movements?limit=50
func ListMovementsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := httpx.QueryLimit(c)
		if err != nil {
			return err
		}

		movements, err := store.ListMovements(c.UserContext(), limit)
		if err != nil {
			return err
		}

		res := make([]MovementResponse, 0, len(movements))
		for _, m := range movements {
			res = append(res, MovementResponse{
				ID:             m.ID,
				RecordedAt:     m.RecordedAt.String(),
				Type:           m.Type,
				Concept:        m.Concept,
				Amount:         m.Amount,
				AmountDisplay:  currency.Format(m.Amount),
				Balance:        m.Balance,
				BalanceDisplay: currency.Format(m.Balance),
				SourceType:     m.SourceType,
				SourceID:       m.SourceID,
			})
		}
		return c.JSON(res)
	}
}

// GET /api/ledger/balance
func BalanceHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance, err := store.CurrentBalance(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(BalanceResponse{
			Balance:        balance,
			BalanceDisplay: currency.Format(balance),
		})
	}
}
