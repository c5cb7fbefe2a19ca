package models

import "github.com/shopspring/decimal"

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null;index" json:"name"`
	Code      string          `gorm:"size:50;not null;uniqueIndex" json:"code"` // external product code
	Stock     int             `gorm:"not null;default:0" json:"stock"`          // only in-place mutated number
	SalePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"sale_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"unit_cost"`
	Category  string          `gorm:"size:100" json:"category"`
	CreatedAt Timestamp       `gorm:"size:19;not null" json:"created_at"`
}
