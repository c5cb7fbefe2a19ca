package expense

import (
	"context"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Store interface {
	RecordExpense(ctx context.Context, in ledger.NewExpense) (models.Expense, error)
	ListExpenses(ctx context.Context, limit int) ([]models.Expense, error)
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

type CreateExpenseRequest struct {
	Concept     string          `json:"concept"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"` // empty means "General"
	Description string          `json:"description"`
}

type ExpenseResponse struct {
	ID            uint            `json:"id"`
	Concept       string          `json:"concept"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	SpentAt       string          `json:"spent_at"`
}

func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Concept:       e.Concept,
		Amount:        e.Amount,
		AmountDisplay: currency.Format(e.Amount),
		Category:      e.Category,
		Description:   e.Description,
		SpentAt:       e.SpentAt.String(),
	}
}

// GET /api/expenses?limit=50
func ListExpensesHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := httpx.QueryLimit(c)
		if err != nil {
			return err
		}

		expenses, err := store.ListExpenses(c.UserContext(), limit)
		if err != nil {
			return err
		}

		res := make([]ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			res = append(res, toExpenseResponse(e))
		}
		return c.JSON(res)
	}
}

// POST /api/expenses
func CreateExpenseHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		e, err := store.RecordExpense(c.UserContext(), ledger.NewExpense{
			Concept:     body.Concept,
			Amount:      body.Amount,
			Category:    body.Category,
			Description: body.Description,
		})
		if err != nil {
			return err
		}

		balance, err := store.CurrentBalance(c.UserContext())
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"expense":         toExpenseResponse(e),
			"balance":         balance,
			"balance_display": currency.Format(balance),
		})
	}
}
