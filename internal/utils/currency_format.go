package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount in the display convention used across the
// app: "Rp 1.500.000", zero minor units, dot as thousands separator.
func FormatRupiah(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("Rp ")
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
