package ledger

import (
	"context"
	"fmt"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NewProduction struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	TotalCost decimal.Decimal `json:"total_cost" validate:"dgte0"`
}

type ProductionView struct {
	models.ProductionEntry
	ProductName string `json:"product_name"`
}

// RecordProduction stores a production run and adds its quantity to the
// product's stock.
func (s *Store) RecordProduction(ctx context.Context, in NewProduction) (models.ProductionEntry, error) {
	if err := s.check(in); err != nil {
		return models.ProductionEntry{}, err
	}

	entry := models.ProductionEntry{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		TotalCost:  in.TotalCost,
		ProducedAt: models.NewTimestamp(s.now()),
	}

	err := s.transaction(ctx, "record production", func(tx *gorm.DB) error {
		if err := requireProduct(tx, in.ProductID); err != nil {
			return err
		}
		if err := tx.Omit("Product").Create(&entry).Error; err != nil {
			return err
		}
		if err := changeStock(tx, in.ProductID, in.Quantity); err != nil {
			return err
		}
		return audit.Write(tx, audit.LogOptions{
			EntityType:  "production",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Producción de %d unidades del producto %d", entry.Quantity, entry.ProductID),
			After:       entry,
		})
	})
	if err != nil {
		return models.ProductionEntry{}, err
	}

	s.obs.ProductionRecorded(entry.Quantity)
	s.log.Info("production recorded",
		zap.Uint("production_id", entry.ID),
		zap.Uint("product_id", entry.ProductID),
		zap.Int("quantity", entry.Quantity),
		zap.String("total_cost", entry.TotalCost.String()),
	)
	return entry, nil
}

func (s *Store) ListProduction(ctx context.Context, limit int) ([]ProductionView, error) {
	var entries []models.ProductionEntry
	err := s.db.WithContext(ctx).
		Preload("Product").
		Order("produced_at DESC").
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&entries).Error
	if err != nil {
		return nil, storageErr("list production", err)
	}

	views := make([]ProductionView, 0, len(entries))
	for _, e := range entries {
		v := ProductionView{ProductionEntry: e}
		if e.Product != nil {
			v.ProductName = e.Product.Name
		}
		views = append(views, v)
	}
	return views, nil
}

func requireProduct(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return nil
}
