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

type NewProduct struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Code      string          `json:"code" validate:"required,max=50"`
	Stock     int             `json:"stock"`
	SalePrice decimal.Decimal `json:"sale_price" validate:"dgte0"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"dgte0"`
	Category  string          `json:"category" validate:"max=100"`
}

func (p *NewProduct) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.TrimSpace(p.Code)
	p.Category = strings.TrimSpace(p.Category)
}

// AddProduct registers a product and returns its id. Codes are unique.
func (s *Store) AddProduct(ctx context.Context, in NewProduct) (uint, error) {
	in.normalize()
	if err := s.check(in); err != nil {
		return 0, err
	}

	var product models.Product
	err := s.transaction(ctx, "add product", func(tx *gorm.DB) error {
		var err error
		product, err = s.insertProduct(tx, in)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("product added",
		zap.Uint("product_id", product.ID),
		zap.String("code", product.Code),
	)
	return product.ID, nil
}

func (s *Store) insertProduct(tx *gorm.DB, in NewProduct) (models.Product, error) {
	var count int64
	if err := tx.Model(&models.Product{}).Where("code = ?", in.Code).Count(&count).Error; err != nil {
		return models.Product{}, err
	}
	if count > 0 {
		return models.Product{}, fmt.Errorf("%w: product code %q already exists", ErrConstraintViolation, in.Code)
	}

	product := models.Product{
		Name:      in.Name,
		Code:      in.Code,
		Stock:     in.Stock,
		SalePrice: in.SalePrice,
		UnitCost:  in.UnitCost,
		Category:  in.Category,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	if err := tx.Create(&product).Error; err != nil {
		return models.Product{}, err
	}

	err := audit.Write(tx, audit.LogOptions{
		EntityType:  "product",
		EntityID:    product.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Producto %s (%s) registrado", product.Name, product.Code),
		After:       product,
	})
	return product, err
}

// ListProducts returns every product ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

func (s *Store) Product(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return models.Product{}, storageErr(fmt.Sprintf("product %d", id), err)
	}
	return p, nil
}

// AdjustStock applies a manual correction of delta units to a product's stock.
func (s *Store) AdjustStock(ctx context.Context, id uint, delta int) (models.Product, error) {
	if delta == 0 {
		return models.Product{}, invalidf("stock adjustment must not be zero")
	}

	var product models.Product
	err := s.transaction(ctx, "adjust stock", func(tx *gorm.DB) error {
		if err := changeStock(tx, id, delta); err != nil {
			return err
		}
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		return audit.Write(tx, audit.LogOptions{
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Ajuste de stock %+d", delta),
			After:       product,
		})
	})
	if err != nil {
		return models.Product{}, err
	}

	s.log.Info("stock adjusted", zap.Uint("product_id", id), zap.Int("delta", delta), zap.Int("stock", product.Stock))
	return product, nil
}

// changeStock adds delta to the product's stock in place.
func changeStock(tx *gorm.DB, productID uint, delta int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	return nil
}

// ImportProducts inserts all rows in one transaction; a single bad row
// aborts the whole import.
func (s *Store) ImportProducts(ctx context.Context, rows []NewProduct) (int, error) {
	if len(rows) == 0 {
		return 0, invalidf("no products to import")
	}

	seen := make(map[string]int, len(rows))
	for i := range rows {
		rows[i].normalize()
		if err := s.check(rows[i]); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if prev, dup := seen[rows[i].Code]; dup {
			return 0, fmt.Errorf("row %d: %w: code %q repeats row %d", i+1, ErrConstraintViolation, rows[i].Code, prev)
		}
		seen[rows[i].Code] = i + 1
	}

	err := s.transaction(ctx, "import products", func(tx *gorm.DB) error {
		for i, row := range rows {
			if _, err := s.insertProduct(tx, row); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("products imported", zap.Int("count", len(rows)))
	return len(rows), nil
}
