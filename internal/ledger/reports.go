package ledger

import (
	"context"
	"fmt"

	"fabrica-backend/internal/audit"
	"fabrica-backend/internal/models"

	"gorm.io/gorm"
)

// SaveReport archives a generated monthly document.
func (s *Store) SaveReport(ctx context.Context, r *models.MonthlyReport) error {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = models.NewTimestamp(s.now())
	}
	return s.transaction(ctx, "save report", func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		return audit.Write(tx, audit.LogOptions{
			EntityType:  "monthly_report",
			EntityID:    r.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Reporte %04d-%02d generado (%s)", r.Year, r.Month, r.Format),
			After:       r,
		})
	})
}

func (s *Store) ListReports(ctx context.Context, limit int) ([]models.MonthlyReport, error) {
	reports := []models.MonthlyReport{}
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(normalizeLimit(limit)).
		Find(&reports).Error
	if err != nil {
		return nil, storageErr("list reports", err)
	}
	return reports, nil
}

func (s *Store) Report(ctx context.Context, id uint) (models.MonthlyReport, error) {
	var r models.MonthlyReport
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return models.MonthlyReport{}, storageErr(fmt.Sprintf("report %d", id), err)
	}
	return r, nil
}
