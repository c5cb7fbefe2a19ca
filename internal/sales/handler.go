package sales

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
	RecordSale(ctx context.Context, in ledger.NewSale) (models.Sale, error)
	ListSales(ctx context.Context, limit int) ([]ledger.SaleView, error)
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

type CreateSaleRequest struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Customer  string          `json:"customer"` // empty means "Cliente General"
}

type SaleResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Customer     string          `json:"customer"`
	SoldAt       string          `json:"sold_at"`
}

func toSaleResponse(s models.Sale, productName string) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		ProductName:  productName,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		Total:        s.Total,
		TotalDisplay: currency.Format(s.Total),
		Customer:     s.Customer,
		SoldAt:       s.SoldAt.String(),
	}
}

// GET /api/sales?limit=50
func ListSalesHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := httpx.QueryLimit(c)
		if err != nil {
			return err
		}

		sales, err := store.ListSales(c.UserContext(), limit)
		if err != nil {
			return err
		}

		res := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			res = append(res, toSaleResponse(s.Sale, s.ProductName))
		}
		return c.JSON(res)
	}
}

// POST /api/sales
func CreateSaleHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		sale, err := store.RecordSale(c.UserContext(), ledger.NewSale{
			ProductID: body.ProductID,
			Quantity:  body.Quantity,
			UnitPrice: body.UnitPrice,
			Customer:  body.Customer,
		})
		if err != nil {
			return err
		}

		balance, err := store.CurrentBalance(c.UserContext())
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"sale":            toSaleResponse(sale, ""),
			"balance":         balance,
			"balance_display": currency.Format(balance),
		})
	}
}
