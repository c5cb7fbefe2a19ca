package report

import (
	"testing"
	"time"

	"fabrica-backend/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSummary() ledger.MonthlySummary {
	return ledger.MonthlySummary{
		Period:        ledger.Period{Year: 2024, Month: time.March},
		TotalSales:    decimal.NewFromInt(8000),
		TotalExpenses: decimal.NewFromInt(3000),
		Balance:       decimal.NewFromInt(5000),
		UnitsProduced: 10,
		CostPerUnit:   decimal.NewFromInt(300),
	}
}

func TestBuild(t *testing.T) {
	doc := Build(scenarioSummary(), decimal.NewFromInt(1234567))

	assert.Equal(t, "RESUMEN MENSUAL - Marzo 2024", doc.Title)
	require.Len(t, doc.Sections, 3)

	fin := doc.Sections[0]
	assert.Equal(t, "RESUMEN FINANCIERO", fin.Title)
	assert.Equal(t, []Row{
		{Label: "TOTAL DE VENTAS", Value: "Gs. 8.000", Tone: TonePositive},
		{Label: "TOTAL DE GASTOS", Value: "Gs. 3.000", Tone: ToneNegative},
		{Label: "BALANCE DEL MES", Value: "Gs. 5.000", Tone: TonePositive},
	}, fin.Rows)

	prod := doc.Sections[1]
	assert.Equal(t, "RESUMEN DE PRODUCCIÓN", prod.Title)
	assert.Equal(t, "10 unidades", prod.Rows[0].Value)
	assert.Equal(t, ToneInfo, prod.Rows[0].Tone)
	assert.Equal(t, "Gs. 300", prod.Rows[1].Value)
	assert.Equal(t, ToneWarning, prod.Rows[1].Tone)

	acc := doc.Sections[2]
	assert.Equal(t, "BALANCE ACUMULADO", acc.Title)
	assert.Equal(t, Row{Label: "SALDO TOTAL", Value: "Gs. 1.234.567", Tone: ToneAccent}, acc.Rows[0])

	assert.Len(t, doc.Notes, 2)
}

func TestBuild_NegativeMonthBalance(t *testing.T) {
	sum := ledger.MonthlySummary{
		Period:        ledger.Period{Year: 2025, Month: time.January},
		TotalExpenses: decimal.NewFromInt(5000),
		Balance:       decimal.NewFromInt(-5000),
	}
	doc := Build(sum, decimal.Zero)

	row := doc.Sections[0].Rows[2]
	assert.Equal(t, ToneNegative, row.Tone)
	assert.Equal(t, "Gs. -5.000", row.Value)
	assert.Equal(t, "0 unidades", doc.Sections[1].Rows[0].Value)
	assert.Equal(t, "Gs. 0", doc.Sections[2].Rows[0].Value)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Enero", MonthName(time.January))
	assert.Equal(t, "Septiembre", MonthName(time.September))
	assert.Equal(t, "Diciembre", MonthName(time.December))
	assert.Equal(t, "Mes desconocido", MonthName(0))
}

func TestToneColors(t *testing.T) {
	assert.Equal(t, "28A745", TonePositive.Color().Hex())
	assert.Equal(t, "DC3545", ToneNegative.Color().Hex())
	assert.Equal(t, "6F42C1", ToneAccent.Color().Hex())
	assert.Equal(t, ToneInfo.Color(), Tone("unknown").Color())
}
