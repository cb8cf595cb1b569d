package convert

import (
	"context"
	"errors"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"go-currency-converter/rates"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
)

type mock struct {
	quotes map[domain.Pair]domain.Quote
}

func (m *mock) Quote(_ context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error) {
	q, ok := m.quotes[domain.Pair{From: from, To: to}]
	if !ok {
		return domain.Quote{}, domain.ErrRateUnavailable
	}
	return q, nil
}

func TestService_Convert(t *testing.T) {
	usdMxn := domain.Quote{Source: domain.USD, Target: domain.MXN, Buy: 19.11, Sell: 19.89, IsMainCurrency: true}
	mxnUsd := domain.Quote{Source: domain.MXN, Target: domain.USD, Buy: 19.89, Sell: 19.11, IsMainCurrency: false}

	service := &service{
		rates: &mock{quotes: map[domain.Pair]domain.Quote{
			usdMxn.Pair(): usdMxn,
			mxnUsd.Pair(): mxnUsd,
		}},
	}

	type args struct {
		amount string
		from   domain.Currency
		to     domain.Currency
		side   engine.Side
	}
	tests := []struct {
		name        string
		args        args
		wantAmounts engine.Amounts
		wantRate    domain.Rate
		wantIs      error
	}{
		{
			"usd -> mxn from side",
			args{"100", domain.USD, domain.MXN, engine.From},
			engine.Amounts{From: "100", To: "1911.000"},
			19.11,
			nil,
		},
		{
			"usd -> mxn to side",
			args{"1911", domain.USD, domain.MXN, engine.To},
			engine.Amounts{From: "100.000", To: "1911"},
			19.89,
			nil,
		},
		{
			"mxn -> usd from side",
			args{"100", domain.MXN, domain.USD, engine.From},
			engine.Amounts{From: "100", To: "5.028"},
			19.89,
			nil,
		},
		{
			"unparseable amount",
			args{"abc", domain.USD, domain.MXN, engine.From},
			engine.Amounts{From: "abc", To: ""},
			19.11,
			nil,
		},
		{
			"no rate",
			args{"100", domain.EUR, domain.MXN, engine.From},
			engine.Amounts{},
			0,
			domain.ErrRateUnavailable,
		},
		{
			"same currency",
			args{"100", domain.USD, domain.USD, engine.From},
			engine.Amounts{},
			0,
			domain.ErrCurrencyDisabled,
		},
		{
			"unknown currency",
			args{"100", "GBP", domain.USD, engine.From},
			engine.Amounts{},
			0,
			domain.ErrUnknownCurrency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Convert(context.Background(), tt.args.amount, tt.args.from, tt.args.to, tt.args.side)
			if (err != nil) != (tt.wantIs != nil) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantIs)
				return
			}
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
				return
			}
			assert.Equal(t, tt.wantAmounts, got.Amounts)
			assert.Equal(t, tt.wantRate, got.Rate)
		})
	}
}

func TestService_ConvertWithStub(t *testing.T) {
	stub := rates.NewStubService(rates.WithLatency(0), rates.WithJitter(func() float64 { return 1 }))
	s := NewLoggingService(log.NewNopLogger(), NewService(stub))

	got, err := s.Convert(context.Background(), "100", domain.USD, domain.MXN, engine.From)

	assert.NoError(t, err)
	assert.Equal(t, "1 USD = $ 19.11 MXN", got.Quote.Label)
	assert.Equal(t, "1911.000", got.Amounts.To)
}
