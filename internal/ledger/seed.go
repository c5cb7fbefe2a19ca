package ledger

import (
	"context"

	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var sampleProducts = []NewProduct{
	{Name: "Producto A", Code: "PROD-001", Stock: 100, SalePrice: decimal.NewFromInt(50000), Category: "Categoría 1"},
	{Name: "Producto B", Code: "PROD-002", Stock: 50, SalePrice: decimal.NewFromInt(75000), Category: "Categoría 1"},
	{Name: "Producto C", Code: "PROD-003", Stock: 200, SalePrice: decimal.NewFromInt(25000), Category: "Categoría 2"},
}

// SeedSampleProducts fills an empty catalogue with the sample products.
// It returns how many were inserted; zero when products already exist.
func (s *Store) SeedSampleProducts(ctx context.Context) (int, error) {
	inserted := 0
	err := s.transaction(ctx, "seed products", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, p := range sampleProducts {
			if _, err := s.insertProduct(tx, p); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		s.log.Info("sample products seeded", zap.Int("count", inserted))
	}
	return inserted, nil
}
