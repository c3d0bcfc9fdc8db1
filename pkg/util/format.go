package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatPrice renders a price for display. Crypto prices are grouped
// integers ("67,412"); everything else keeps two decimals ("2,391.80").
func FormatPrice(price float64, crypto bool) string {
	if crypto {
		return groupThousands(fmt.Sprintf("%.0f", math.Round(price)))
	}
	s := fmt.Sprintf("%.2f", price)
	dot := strings.IndexByte(s, '.')
	return groupThousands(s[:dot]) + s[dot:]
}

// Round2 rounds to two decimal places using standard rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func groupThousands(intPart string) string {
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		if neg {
			return "-" + intPart
		}
		return intPart
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := n % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}
