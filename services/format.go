package services

import (
	"fmt"
	"strings"
)

// FormatCurrency formats an amount as Mexican pesos, or "-" when the
// amount is absent (a "Consultar" price that never resolved to a
// number).
func FormatCurrency(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return FormatMXN(*amount)
}

// FormatMXN formats a float64 amount as Mexican-peso currency with
// thousands grouping and exactly 2 decimal places, e.g. $1,234.56.
// Negative amounts render as -$500.00.
func FormatMXN(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
