package inventory

import (
	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateProductionRequest struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type ProductionResponse struct {
	ID               uint            `json:"id"`
	ProductID        uint            `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalCostDisplay string          `json:"total_cost_display"`
	ProducedAt       string          `json:"produced_at"`
}

// GET /api/production?limit=50
func ListProductionHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := httpx.QueryLimit(c)
		if err != nil {
			return err
		}

		entries, err := store.ListProduction(c.UserContext(), limit)
		if err != nil {
			return err
		}

		res := make([]ProductionResponse, 0, len(entries))
		for _, e := range entries {
			res = append(res, ProductionResponse{
				ID:               e.ID,
				ProductID:        e.ProductID,
				ProductName:      e.ProductName,
				Quantity:         e.Quantity,
				TotalCost:        e.TotalCost,
				TotalCostDisplay: currency.Format(e.TotalCost),
				ProducedAt:       e.ProducedAt.String(),
			})
		}
		return c.JSON(res)
	}
}

// POST /api/production
func CreateProductionHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		entry, err := store.RecordProduction(c.UserContext(), ledger.NewProduction{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			TotalCost: body.TotalCost,
		})
		if err != nil {
			return err
		}

		p, err := store.Product(c.UserContext(), entry.ProductID)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"production": ProductionResponse{
				ID:               entry.ID,
				ProductID:        entry.ProductID,
				ProductName:      p.Name,
				Quantity:         entry.Quantity,
				TotalCost:        entry.TotalCost,
				TotalCostDisplay: currency.Format(entry.TotalCost),
				ProducedAt:       entry.ProducedAt.String(),
			},
			"stock": p.Stock,
		})
	}
}
