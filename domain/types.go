package domain

import (
	"fmt"
	"time"
)

// Currency a 3-letter currency code
type Currency string

// Rate an exchange rate
type Rate float64

// Pair an ordered source/target currency pair. Pair is comparable and used as a cache key.
type Pair struct {
	From Currency
	To   Currency
}

func (p Pair) String() string {
	return fmt.Sprintf("%v/%v", p.From, p.To)
}

// Inverse returns the pair with source and target swapped
func (p Pair) Inverse() Pair {
	return Pair{From: p.To, To: p.From}
}

// Quote a buy/sell quote for a currency pair. A Quote is never modified once produced;
// the next fetch replaces it wholesale.
type Quote struct {
	Source         Currency
	Target         Currency
	Buy            Rate
	Sell           Rate
	IsMainCurrency bool
	Label          string
	Reference      *string
	CreatedAt      *time.Time
	CountryAccount string
}

// Pair the currency pair the quote was produced for
func (q Quote) Pair() Pair {
	return Pair{From: q.Source, To: q.Target}
}

// ConversionRecord a committed conversion. Records are append-only.
type ConversionRecord struct {
	ID           string
	FromCurrency Currency
	ToCurrency   Currency
	FromAmount   string
	ToAmount     string
	Rate         Rate
	Timestamp    time.Time
}
