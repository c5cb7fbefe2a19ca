package models

import "github.com/shopspring/decimal"

type MovementType string

const (
	MovementIncome  MovementType = "INCOME"
	MovementExpense MovementType = "EXPENSE"
)

// LedgerMovement is an append-only row of the cash ledger. Balance holds the
// accumulated balance after this movement was applied.
type LedgerMovement struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	RecordedAt Timestamp       `gorm:"size:19;index;not null" json:"recorded_at"`
	Type       MovementType    `gorm:"size:10;not null" json:"type"`
	Concept    string          `gorm:"size:200" json:"concept"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"`
	SourceType string          `gorm:"size:20;index" json:"source_type"` // "sale" / "expense"
	SourceID   uint            `gorm:"index" json:"source_id"`
}

// Signed returns the effect of the movement on the balance.
func (m LedgerMovement) Signed() decimal.Decimal {
	if m.Type == MovementExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}
