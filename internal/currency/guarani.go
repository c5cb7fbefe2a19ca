// Package currency renders amounts in Paraguayan guaraníes: "Gs. " followed by
// the integer-rounded value with "." as thousands separator.
package currency

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const grapheme = "Gs."

var (
	positive = money.NewFormatter(0, ",", ".", grapheme, "$ 1")
	negative = money.NewFormatter(0, ",", ".", grapheme, "$ -1")

	// go-money amounts are int64; the negated minimum would overflow.
	minAmount = decimal.NewFromInt(math.MinInt64 + 1)
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// Format renders v as "Gs. 1.234.567". Values are rounded half away from zero.
func Format(v decimal.Decimal) string {
	r := v.Round(0)
	if r.LessThan(minAmount) || r.GreaterThan(maxAmount) {
		return formatLarge(r)
	}
	n := r.IntPart()
	if n < 0 {
		return negative.Format(-n)
	}
	return positive.Format(n)
}

// FormatPtr renders nil as "Gs. 0".
func FormatPtr(v *decimal.Decimal) string {
	if v == nil {
		return Format(decimal.Zero)
	}
	return Format(*v)
}

func FormatInt(v int64) string {
	return Format(decimal.NewFromInt(v))
}

// formatLarge groups the digits of amounts outside the int64 range.
func formatLarge(r decimal.Decimal) string {
	digits := r.Abs().String()

	var b strings.Builder
	b.WriteString(grapheme + " ")
	if r.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
