package report

import (
	"fmt"
	"time"

	"fabrica-backend/internal/currency"
	"fabrica-backend/internal/ledger"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return "Mes desconocido"
	}
	return monthNames[m-1]
}

// Build lays out the monthly summary and the accumulated balance.
func Build(sum ledger.MonthlySummary, balance decimal.Decimal) Document {
	monthTone := TonePositive
	if sum.Balance.IsNegative() {
		monthTone = ToneNegative
	}

	return Document{
		Title:  fmt.Sprintf("RESUMEN MENSUAL - %s %d", MonthName(sum.Period.Month), sum.Period.Year),
		Period: sum.Period,
		Sections: []Section{
			{
				Title: "RESUMEN FINANCIERO",
				Rows: []Row{
					{Label: "TOTAL DE VENTAS", Value: currency.Format(sum.TotalSales), Tone: TonePositive},
					{Label: "TOTAL DE GASTOS", Value: currency.Format(sum.TotalExpenses), Tone: ToneNegative},
					{Label: "BALANCE DEL MES", Value: currency.Format(sum.Balance), Tone: monthTone},
				},
			},
			{
				Title: "RESUMEN DE PRODUCCIÓN",
				Rows: []Row{
					{Label: "UNIDADES PRODUCIDAS", Value: fmt.Sprintf("%d unidades", sum.UnitsProduced), Tone: ToneInfo},
					{Label: "COSTO POR UNIDAD", Value: currency.Format(sum.CostPerUnit), Tone: ToneWarning},
				},
			},
			{
				Title: "BALANCE ACUMULADO",
				Rows: []Row{
					{Label: "SALDO TOTAL", Value: currency.Format(balance), Tone: ToneAccent},
				},
			},
		},
		Notes: []string{
			"* Los cálculos de costo por unidad incluyen todos los gastos de fábrica del mes.",
			"* El balance acumulado representa el saldo histórico de ingresos menos gastos.",
		},
	}
}
