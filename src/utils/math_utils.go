package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundRupee rounds a monetary amount to the nearest whole rupee.
func RoundRupee(val float64) float64 {
	return math.Round(val)
}

// RoundFloat rounds a float64 to a specified number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// FormatINR renders a rupee amount with comma grouping and no decimals,
// e.g. 240000 -> "240,000". Negative amounts keep their sign.
func FormatINR(val float64) string {
	n := int64(math.Round(val))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
		if len(s) > rem {
			b.WriteString(",")
		}
	}
	for i := rem; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteString(",")
		}
	}
	return sign + b.String()
}
