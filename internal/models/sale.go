package models

import "github.com/shopspring/decimal"

// DefaultCustomer is used when a sale is recorded without a customer name.
const DefaultCustomer = "Cliente General"

type Sale struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Product   *Product        `json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"` // Quantity * UnitPrice
	SoldAt    Timestamp       `gorm:"size:19;index;not null" json:"sold_at"`
	Customer  string          `gorm:"size:150;not null" json:"customer"`
}
