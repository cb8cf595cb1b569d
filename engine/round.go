package engine

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// toFixed renders v with digits decimals the way Number.prototype.toFixed does. Ties on the
// exact binary value round away from zero, magnitudes of 1e21 or more fall back to the
// shortest exponent form, and non-finite values render as "NaN" or "Infinity".
func toFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return roundHalfExpand(v, digits)
}

// roundHalfExpand rounds the exact value of a finite v to digits decimals, ties away from zero.
// Negative values keep their sign even when they round to zero ("-0.00").
func roundHalfExpand(v float64, digits int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())

	s := n.String()
	if digits == 0 {
		return sign + s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	return sign + s[:len(s)-digits] + "." + s[len(s)-digits:]
}
