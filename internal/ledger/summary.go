package ledger

import (
	"context"
	"fmt"
	"time"

	"fabrica-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period is a calendar month in local time.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func CurrentPeriod(now time.Time) Period {
	now = now.Local()
	return Period{Year: now.Year(), Month: now.Month()}
}

func (p Period) Validate() error {
	if p.Year < 1 || p.Year > 9999 {
		return invalidf("year %d out of range", p.Year)
	}
	if p.Month < time.January || p.Month > time.December {
		return invalidf("month %d out of range", int(p.Month))
	}
	return nil
}

// Bounds returns the first instant of the month and the first instant of
// the following one.
func (p Period) Bounds() (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

type MonthlySummary struct {
	Period         Period          `json:"period"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
	UnitsProduced  int64           `json:"units_produced"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	ProductionCost decimal.Decimal `json:"production_cost"`
}

// MonthlySummary aggregates sales, expenses and production recorded within p.
func (s *Store) MonthlySummary(ctx context.Context, p Period) (MonthlySummary, error) {
	if err := p.Validate(); err != nil {
		return MonthlySummary{}, err
	}

	start, end := p.Bounds()
	from, to := models.FormatTimestamp(start), models.FormatTimestamp(end)
	sum := MonthlySummary{Period: p}

	err := s.transaction(ctx, "monthly summary", func(tx *gorm.DB) error {
		var err error
		sum.TotalSales, err = sumDecimal(tx.Model(&models.Sale{}).
			Select("COALESCE(SUM(total), 0)").
			Where("sold_at >= ? AND sold_at < ?", from, to))
		if err != nil {
			return err
		}

		sum.TotalExpenses, err = sumDecimal(tx.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("spent_at >= ? AND spent_at < ?", from, to))
		if err != nil {
			return err
		}

		sum.ProductionCost, err = sumDecimal(tx.Model(&models.ProductionEntry{}).
			Select("COALESCE(SUM(total_cost), 0)").
			Where("produced_at >= ? AND produced_at < ?", from, to))
		if err != nil {
			return err
		}

		return tx.Model(&models.ProductionEntry{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("produced_at >= ? AND produced_at < ?", from, to).
			Row().Scan(&sum.UnitsProduced)
	})
	if err != nil {
		return MonthlySummary{}, err
	}

	sum.Balance = sum.TotalSales.Sub(sum.TotalExpenses)
	sum.CostPerUnit = decimal.Zero
	if sum.UnitsProduced > 0 {
		sum.CostPerUnit = sum.TotalExpenses.Div(decimal.NewFromInt(sum.UnitsProduced)).Round(2)
	}
	return sum, nil
}

func sumDecimal(q *gorm.DB) (decimal.Decimal, error) {
	var d decimal.Decimal
	if err := q.Row().Scan(&d); err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// DefaultCount is the number of buckets shown when none is requested.
func (g Granularity) DefaultCount() int {
	switch g {
	case Weekly:
		return 8
	case Monthly:
		return 12
	}
	return 7
}

type CashFlowPoint struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type CashFlow struct {
	Granularity Granularity     `json:"period"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Points      []CashFlowPoint `json:"points"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Net         decimal.Decimal `json:"net"`
}

// CashFlow buckets ledger movements of the last count days, weeks (starting
// on Monday) or months, oldest bucket first. Empty buckets are included.
func (s *Store) CashFlow(ctx context.Context, g Granularity, count int) (CashFlow, error) {
	switch g {
	case Daily, Weekly, Monthly:
	default:
		return CashFlow{}, invalidf("unknown cash flow period %q", g)
	}
	if count <= 0 {
		count = g.DefaultCount()
	}
	if count > 366 {
		return CashFlow{}, invalidf("count %d too large", count)
	}

	starts := bucketStarts(s.Now(), g, count)
	end := nextBucket(starts[len(starts)-1], g)

	var movements []models.LedgerMovement
	err := s.db.WithContext(ctx).
		Where("recorded_at >= ? AND recorded_at < ?", models.FormatTimestamp(starts[0]), models.FormatTimestamp(end)).
		Order("id ASC").
		Find(&movements).Error
	if err != nil {
		return CashFlow{}, storageErr("cash flow", err)
	}

	cf := CashFlow{
		Granularity: g,
		From:        starts[0].Format("2006-01-02"),
		To:          end.AddDate(0, 0, -1).Format("2006-01-02"),
		Points:      make([]CashFlowPoint, len(starts)),
	}
	for i, st := range starts {
		cf.Points[i] = CashFlowPoint{Label: st.Format("2006-01-02")}
	}

	for _, m := range movements {
		i := bucketIndex(starts, m.RecordedAt.Time)
		if i < 0 {
			continue
		}
		switch m.Type {
		case models.MovementIncome:
			cf.Points[i].Income = cf.Points[i].Income.Add(m.Amount)
			cf.Income = cf.Income.Add(m.Amount)
		case models.MovementExpense:
			cf.Points[i].Expense = cf.Points[i].Expense.Add(m.Amount)
			cf.Expense = cf.Expense.Add(m.Amount)
		}
	}
	for i := range cf.Points {
		cf.Points[i].Net = cf.Points[i].Income.Sub(cf.Points[i].Expense)
	}
	cf.Net = cf.Income.Sub(cf.Expense)
	return cf, nil
}

func bucketStarts(now time.Time, g Granularity, count int) []time.Time {
	now = now.Local()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var last time.Time
	switch g {
	case Weekly:
		offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
		last = today.AddDate(0, 0, -offset)
	case Monthly:
		last = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.Local)
	default:
		last = today
	}

	starts := make([]time.Time, count)
	for i := 0; i < count; i++ {
		back := count - 1 - i
		switch g {
		case Weekly:
			starts[i] = last.AddDate(0, 0, -7*back)
		case Monthly:
			starts[i] = last.AddDate(0, -back, 0)
		default:
			starts[i] = last.AddDate(0, 0, -back)
		}
	}
	return starts
}

func nextBucket(start time.Time, g Granularity) time.Time {
	switch g {
	case Weekly:
		return start.AddDate(0, 0, 7)
	case Monthly:
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

// bucketIndex finds the last bucket starting at or before t.
func bucketIndex(starts []time.Time, t time.Time) int {
	for i := len(starts) - 1; i >= 0; i-- {
		if !t.Before(starts[i]) {
			return i
		}
	}
	return -1
}
