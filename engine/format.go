package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary value for the narrative: zero decimal
// places, period as the thousands separator ("1.234.567"). A nonzero
// fractional part is rounded half away from zero before formatting. The
// statement prefixes values with "R$ " itself.
func FormatMoney(v decimal.Decimal) string {
	s := v.Round(0).StringFixed(0)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	if len(s) > 3 {
		var b strings.Builder
		for i, digit := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				b.WriteByte('.')
			}
			b.WriteRune(digit)
		}
		s = b.String()
	}

	return sign + s
}

// FormatPercent renders a rate (0.01) as an integer percentage ("1").
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(0).StringFixed(0)
}
