package engine

import (
	"errors"
	"go-currency-converter/domain"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Amounts the two displayed amounts. One of them is the user's raw text, the other is derived.
type Amounts struct {
	From string
	To   string
}

// DeriveAmount computes the non-driving amount. isMainCurrency reports whether the non-driving
// side's currency is the main currency of the pair. An empty result means no value.
//
// sell is accepted but not used: both directions are priced off buy.
func DeriveAmount(amount string, buy domain.Rate, sell domain.Rate, isMainCurrency bool) string {
	if amount == "" || amount == "0" || buy == 0 || sell == 0 {
		return ""
	}
	parsed, ok := parseNumber(amount)
	if !ok {
		return ""
	}

	rate := float64(buy)
	if !isMainCurrency {
		rate = 1 / rate
	}
	return toFixed(parsed*rate, 3)
}

// Derive returns the amounts to display for a state. A quote for any pair other than the
// state's current one is stale and treated as absent.
func Derive(s State, q *domain.Quote) Amounts {
	var buy, sell domain.Rate
	fromIsMain := false
	if current(s, q) {
		buy, sell = q.Buy, q.Sell
		fromIsMain = q.Source == s.From && q.IsMainCurrency
	}

	if s.Driving == To {
		return Amounts{
			From: DeriveAmount(s.Amount, buy, sell, !fromIsMain),
			To:   s.Amount,
		}
	}
	return Amounts{
		From: s.Amount,
		To:   DeriveAmount(s.Amount, buy, sell, fromIsMain),
	}
}

func current(s State, q *domain.Quote) bool {
	return q != nil && q.Pair() == s.Pair()
}

// numberPrefix the leading decimal number of a string, after leading whitespace
var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// parseNumber reads the leading decimal number of text, ignoring any trailing characters
// ("12abc" is 12). "Infinity" parses, and so do values out of float64 range, as ±Inf.
// Text without a leading number does not parse.
func parseNumber(text string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimLeftFunc(text, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}
