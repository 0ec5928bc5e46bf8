// Package render formats calculator results in the radixes that expressions
// can be written in.
package render

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/maths"
)

const digits = "0123456789abcdef"

// Float formats x in the radix r. Hexadecimal and binary results have a 0x or
// 0b prefix and, if x is not an integer, a fraction in the same radix after a
// '.'. Infinities and NaN are inf, -inf, and NaN in every radix.
func Float(x float64, r maths.Radix) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	switch r {
	case maths.Hexadecimal:
		return radix(x, 16, "0x")
	case maths.Binary:
		return radix(x, 2, "0b")
	default:
		return decimal(x)
	}
}

// decimal formats x without an exponent unless it is very large or small.
func decimal(x float64) string {
	if a := math.Abs(x); a == 0 || 1e-6 <= a && a < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func radix(x float64, base int, prefix string) string {
	var b strings.Builder
	if x < 0 {
		b.WriteByte('-')
		x = -x
	}
	b.WriteString(prefix)
	whole, frac := math.Modf(x)
	w, _ := big.NewFloat(whole).Int(nil)
	b.WriteString(w.Text(base))
	if frac == 0 {
		return b.String()
	}
	b.WriteByte('.')
	// Multiplying by a power of two is exact, so every step removes at least
	// one bit and the loop ends.
	fb := float64(base)
	for frac != 0 {
		var d float64
		d, frac = math.Modf(frac * fb)
		b.WriteByte(digits[int(d)])
	}
	return b.String()
}
