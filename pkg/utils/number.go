package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way a browser converts a number to a string:
// shortest round-trip digits, exponent form outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
