package engine

import (
	"go-currency-converter/domain"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders amount text as en-US dollars with two decimals ("$1,911.00").
// Text that does not start with a number renders as "$0.00".
func FormatCurrency(amount string) string {
	v, ok := parseNumber(amount)
	if !ok {
		return FormatAmount(0)
	}
	return FormatAmount(v)
}

// FormatAmount renders a value as en-US dollars with two decimals. The shortest decimal form of
// v is rounded half away from zero, so 1.005 renders as "$1.01".
func FormatAmount(v float64) string {
	sign := ""
	if math.Signbit(v) && !math.IsNaN(v) {
		sign = "-"
		v = -v
	}
	switch {
	case math.IsNaN(v):
		return "$NaN"
	case math.IsInf(v, 0):
		return sign + "$∞"
	}

	whole, frac, _ := strings.Cut(decimal.NewFromFloat(v).StringFixed(2), ".")
	return sign + "$" + group(whole) + "." + frac
}

// group inserts thousands separators into a run of digits
func group(digits string) string {
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatRate renders a history rate with four decimals
func FormatRate(r domain.Rate) string {
	return toFixed(float64(r), 4)
}

// Option one entry of a currency picker
type Option struct {
	domain.CurrencyInfo
	Disabled bool
}

// Options lists the picker entries for one side. The currency selected on the opposite side
// is disabled so both sides can never hold the same currency.
func Options(s State, side Side) []Option {
	opposite := s.From
	if side == From {
		opposite = s.To
	}
	catalog := domain.Catalog()
	options := make([]Option, 0, len(catalog))
	for _, info := range catalog {
		options = append(options, Option{CurrencyInfo: info, Disabled: info.Code == opposite})
	}
	return options
}
