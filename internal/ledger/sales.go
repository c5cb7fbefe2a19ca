package ledger

import (
	"context"
	"fmt"
	"strings"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NewSale struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"dgt0"`
	Customer  string          `json:"customer" validate:"max=150"`
}

type SaleView struct {
	models.Sale
	ProductName string `json:"product_name"`
}

// RecordSale stores a sale, takes the sold units out of stock and books the
// total as income. Stock is allowed to go negative.
func (s *Store) RecordSale(ctx context.Context, in NewSale) (models.Sale, error) {
	in.Customer = strings.TrimSpace(in.Customer)
	if err := s.check(in); err != nil {
		return models.Sale{}, err
	}
	if in.Customer == "" {
		in.Customer = models.DefaultCustomer
	}

	sale := models.Sale{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Total:     in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		SoldAt:    models.NewTimestamp(s.now()),
		Customer:  in.Customer,
	}

	var movement models.LedgerMovement
	err := s.transaction(ctx, "record sale", func(tx *gorm.DB) error {
		if err := requireProduct(tx, in.ProductID); err != nil {
			return err
		}
		if err := tx.Omit("Product").Create(&sale).Error; err != nil {
			return err
		}
		if err := changeStock(tx, in.ProductID, -in.Quantity); err != nil {
			return err
		}

		var err error
		movement, err = appendMovement(tx, models.MovementIncome, "Sale - "+sale.Customer, sale.Total, sale.SoldAt,
			movementSource{kind: "sale", id: sale.ID})
		if err != nil {
			return err
		}

		return audit.Write(tx, audit.LogOptions{
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Venta de %d unidades a %s", sale.Quantity, sale.Customer),
			After:       sale,
		})
	})
	if err != nil {
		return models.Sale{}, err
	}

	s.obs.SaleRecorded(sale.Total)
	s.obs.BalanceChanged(movement.Balance)
	s.log.Info("sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("product_id", sale.ProductID),
		zap.Int("quantity", sale.Quantity),
		zap.String("total", sale.Total.String()),
		zap.String("balance", movement.Balance.String()),
	)
	return sale, nil
}

// ListSales returns the most recent sales first, with their product names.
func (s *Store) ListSales(ctx context.Context, limit int) ([]SaleView, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Preload("Product").
		Order("sold_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&sales).Error
	if err != nil {
		return nil, storageErr("list sales", err)
	}

	views := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		v := SaleView{Sale: sale}
		if sale.Product != nil {
			v.ProductName = sale.Product.Name
		}
		views = append(views, v)
	}
	return views, nil
}
