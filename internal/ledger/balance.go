package ledger

import (
	"context"

	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type movementSource struct {
	kind string
	id   uint
}

// appendMovement chains a new movement onto the latest one. It must run in
// the transaction that records the underlying sale or expense.
func appendMovement(tx *gorm.DB, typ models.MovementType, concept string, amount decimal.Decimal, at models.Timestamp, src movementSource) (models.LedgerMovement, error) {
	var last models.LedgerMovement
	if err := tx.Order("id DESC").Limit(1).Find(&last).Error; err != nil {
		return models.LedgerMovement{}, err
	}

	m := models.LedgerMovement{
		RecordedAt: at,
		Type:       typ,
		Concept:    concept,
		Amount:     amount,
		SourceType: src.kind,
		SourceID:   src.id,
	}
	prev := decimal.Zero
	if last.ID != 0 {
		prev = last.Balance
	}
	m.Balance = prev.Add(m.Signed())

	if err := tx.Create(&m).Error; err != nil {
		return models.LedgerMovement{}, err
	}
	return m, nil
}

// CurrentBalance is the balance of the most recent movement, zero when the
// ledger is empty.
func (s *Store) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	var last models.LedgerMovement
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(1).Find(&last).Error; err != nil {
		return decimal.Zero, storageErr("current balance", err)
	}
	if last.ID == 0 {
		return decimal.Zero, nil
	}
	return last.Balance, nil
}

func (s *Store) ListMovements(ctx context.Context, limit int) ([]models.LedgerMovement, error) {
	movements := []models.LedgerMovement{}
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&movements).Error
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	return movements, nil
}
