package models

import "github.com/shopspring/decimal"

// ProductionEntry: one production run, adds Quantity to the product's stock
type ProductionEntry struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProductID  uint            `gorm:"index;not null" json:"product_id"`
	Product    *Product        `json:"-"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	ProducedAt Timestamp       `gorm:"size:19;index;not null" json:"produced_at"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_cost"`
}
