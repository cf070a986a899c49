package pricing

import (
	"math"
	"strconv"
	"strings"
)

const (
	// advanceRate is the fraction of the total collected upfront.
	advanceRate = 0.25
	// minAdvanceAmount is the floor for the advance, in whole Rupees.
	minAdvanceAmount = 500
	// currencySymbol is display-only; prices are not a wire contract.
	currencySymbol = "₹"
)

// CalculateAdvanceAmount returns the minimum upfront payment for a booking:
// 25% of the total, rounded half-up, with a floor of 500. Negative totals are
// not clamped; callers must reject them upstream.
func CalculateAdvanceAmount(total int64) int64 {
	advance := int64(math.Round(float64(total) * advanceRate))
	if advance < minAdvanceAmount {
		return minAdvanceAmount
	}
	return advance
}

// CalculateRemainingAmount returns the balance due after the advance.
func CalculateRemainingAmount(total int64) int64 {
	return total - CalculateAdvanceAmount(total)
}

// FormatPrice renders a whole-Rupee amount with Indian digit grouping,
// e.g. FormatPrice(125000) == "₹1,25,000".
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + currencySymbol + groupIndian(amount)
}

// groupIndian inserts separators after the last three digits and then every
// two digits, per the Indian numbering convention.
func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}

	head := str[:len(str)-3]
	tail := str[len(str)-3:]

	var out strings.Builder
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	out.WriteByte(',')
	out.WriteString(tail)
	return out.String()
}
