package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"fabrica-backend/internal/models"

	"gorm.io/gorm"
)

const defaultListLimit = 100

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	After       any
}

// Filter narrows an audit trail listing. Zero values mean "any".
type Filter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

// Write appends an audit row using tx, so the entry commits or rolls back
// together with the mutation it describes.
func Write(tx *gorm.DB, opts LogOptions) error {
	afterStr := "null"
	if opts.After != nil {
		b, err := json.Marshal(opts.After)
		if err != nil {
			return fmt.Errorf("audit snapshot: %w", err)
		}
		afterStr = string(b)
	}

	log := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterStr,
	}

	if err := tx.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

// List returns audit rows newest first.
func List(ctx context.Context, db *gorm.DB, f Filter) ([]models.AuditLog, error) {
	dbq := db.WithContext(ctx).Model(&models.AuditLog{})

	if f.EntityType != "" {
		dbq = dbq.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		dbq = dbq.Where("entity_id = ?", f.EntityID)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	logs := []models.AuditLog{}
	if err := dbq.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
