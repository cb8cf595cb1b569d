package rates

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"math"
	"math/rand"
	"strconv"
	"time"
)

const (
	DefaultLatency = 1 * time.Second
	DefaultSpread  = 0.04

	// CountryAccount reported on every synthesized quote
	CountryAccount = "USA"
)

// epsilon the gap between 1 and the next float64, added before rounding
var epsilon = math.Nextafter(1, 2) - 1

// JitterFunc returns a multiplicative variation applied to the base rate
type JitterFunc func() float64

// RandomJitter is uniformly distributed in [0.995, 1.005]
func RandomJitter() float64 {
	return 1 + (rand.Float64()-0.5)*0.01
}

// stubService synthesizes quotes around baseRates without any network I/O
type stubService struct {
	latency time.Duration
	spread  float64
	jitter  JitterFunc
	now     func() time.Time
}

// StubOption configures the stub service
type StubOption func(*stubService)

// WithLatency sets the simulated response time
func WithLatency(d time.Duration) StubOption {
	return func(s *stubService) { s.latency = d }
}

// WithSpread sets the buy/sell gap as a fraction of the rate
func WithSpread(spread float64) StubOption {
	return func(s *stubService) { s.spread = spread }
}

// WithJitter replaces the random rate variation
func WithJitter(j JitterFunc) StubOption {
	return func(s *stubService) { s.jitter = j }
}

// WithClock replaces the time source used for CreatedAt
func WithClock(now func() time.Time) StubOption {
	return func(s *stubService) { s.now = now }
}

// NewStubService constructs a Service that pretends to be a remote rate API.
func NewStubService(opts ...StubOption) Service {
	s := &stubService{
		latency: DefaultLatency,
		spread:  DefaultSpread,
		jitter:  RandomJitter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote waits out the simulated latency, then synthesizes a quote for the pair.
func (s *stubService) Quote(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return domain.Quote{}, ctx.Err()
		}
	}

	base, err := BaseRate(from, to)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote [%v/%v]: %w", from, to, err)
	}
	return synthesize(from, to, base*s.jitter(), s.spread, s.now()), nil
}

// synthesize applies the spread to an already jittered rate and builds the label
func synthesize(from domain.Currency, to domain.Currency, rate float64, spread float64, now time.Time) domain.Quote {
	q := domain.Quote{
		Source:         from,
		Target:         to,
		CountryAccount: CountryAccount,
		CreatedAt:      &now,
	}

	main, other := from, to
	if IsMainCurrency(from, to) {
		q.IsMainCurrency = true
		q.Buy = domain.Rate(roundToTwo(rate * (1 - spread/2)))
		q.Sell = domain.Rate(roundToTwo(rate * (1 + spread/2)))
	} else {
		main, other = to, from
		q.Buy = domain.Rate(roundToTwo((1 / rate) * (1 + spread/2)))
		q.Sell = domain.Rate(roundToTwo((1 / rate) * (1 - spread/2)))
	}

	q.Label = fmt.Sprintf("1 %v = $ %v %v", main, strconv.FormatFloat(float64(q.Buy), 'f', -1, 64), other)
	return q
}

func roundToTwo(v float64) float64 {
	return math.Round((v+epsilon)*100) / 100
}
