package models

import "github.com/shopspring/decimal"

// MonthlyReport: archive of every generated monthly document
type MonthlyReport struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Year        int       `gorm:"index;not null" json:"year"`
	Month       int       `gorm:"index;not null" json:"month"` // 1-12
	Format      string    `gorm:"size:10;not null" json:"format"`
	FilePath    string    `gorm:"size:500;not null" json:"file_path"`
	GeneratedAt Timestamp `gorm:"size:19;index;not null" json:"generated_at"`

	SalesTotal         decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"sales_total"`
	ExpensesTotal      decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"expenses_total"`
	Balance            decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"balance"`
	UnitsProduced      int64           `gorm:"default:0" json:"units_produced"`
	CostPerUnit        decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"cost_per_unit"`
	AccumulatedBalance decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"accumulated_balance"`

	// document snapshot (JSON)
	ReportData string `gorm:"type:text" json:"-"`
}
