package inventory

import (
	"context"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/httpx"
	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Store is the part of the ledger the inventory endpoints use.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id uint) (models.Product, error)
	AddProduct(ctx context.Context, in ledger.NewProduct) (uint, error)
	AdjustStock(ctx context.Context, id uint, delta int) (models.Product, error)
	ImportProducts(ctx context.Context, rows []ledger.NewProduct) (int, error)
	RecordProduction(ctx context.Context, in ledger.NewProduction) (models.ProductionEntry, error)
	ListProduction(ctx context.Context, limit int) ([]ledger.ProductionView, error)
}

type ProductResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Code             string          `json:"code"`
	Stock            int             `json:"stock"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	SalePriceDisplay string          `json:"sale_price_display"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Category         string          `json:"category"`
	CreatedAt        string          `json:"created_at"`
}

type CreateProductRequest struct {
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Stock     int             `json:"stock"`
	SalePrice decimal.Decimal `json:"sale_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Category  string          `json:"category"`
}

type StockAdjustmentRequest struct {
	Delta int `json:"delta"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Code:             p.Code,
		Stock:            p.Stock,
		SalePrice:        p.SalePrice,
		SalePriceDisplay: currency.Format(p.SalePrice),
		UnitCost:         p.UnitCost,
		Category:         p.Category,
		CreatedAt:        p.CreatedAt.String(),
	}
}

// GET /api/products
func ListProductsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := store.ListProducts(c.UserContext())
		if err != nil {
			return err
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, toProductResponse(p))
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		p, err := store.Product(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(toProductResponse(p))
	}
}

// POST /api/products
func CreateProductHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		id, err := store.AddProduct(c.UserContext(), ledger.NewProduct{
			Name:      body.Name,
			Code:      body.Code,
			Stock:     body.Stock,
			SalePrice: body.SalePrice,
			UnitCost:  body.UnitCost,
			Category:  body.Category,
		})
		if err != nil {
			return err
		}

		p, err := store.Product(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// POST /api/products/:id/stock-adjustments
func AdjustStockHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}

		var body StockAdjustmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		p, err := store.AdjustStock(c.UserContext(), id, body.Delta)
		if err != nil {
			return err
		}
		return c.JSON(toProductResponse(p))
	}
}
