package models

import "github.com/shopspring/decimal"

// DefaultExpenseCategory is used when an expense is recorded without a category.
const DefaultExpenseCategory = "General"

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Concept     string          `gorm:"size:150;not null" json:"concept"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Category    string          `gorm:"size:100" json:"category"`
	SpentAt     Timestamp       `gorm:"size:19;index;not null" json:"spent_at"`
	Description string          `gorm:"size:500" json:"description"`
}
