package convert

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"go-currency-converter/rates"
)

// Conversion the outcome of a one-shot conversion
type Conversion struct {
	Quote   domain.Quote
	Amounts engine.Amounts
	// Rate the quote rate a commit of this conversion would record
	Rate domain.Rate
}

// Service converts an amount typed on either side of a pair without keeping session state
type Service interface {
	Convert(ctx context.Context, amount string, from domain.Currency, to domain.Currency, side engine.Side) (Conversion, error)
}

type service struct {
	// rates to look up quotes
	rates rates.Service
}

// NewService constructs a valid Service
func NewService(s rates.Service) Service {
	return &service{
		rates: s,
	}
}

// Convert fetches a fresh quote for the pair and derives the other side's amount from it, by
// the same rule the session form uses.
func (s *service) Convert(ctx context.Context, amount string, from domain.Currency, to domain.Currency, side engine.Side) (Conversion, error) {
	if !domain.Supported(from) || !domain.Supported(to) {
		return Conversion{}, fmt.Errorf("convert [%v/%v]: %w", from, to, domain.ErrUnknownCurrency)
	}
	if from == to {
		return Conversion{}, fmt.Errorf("convert [%v/%v]: %w", from, to, domain.ErrCurrencyDisabled)
	}

	state := engine.State{From: from, To: to, Driving: engine.From}
	var err error
	if side == engine.To {
		state, err = engine.Reduce(state, engine.EditTo{Text: amount})
	} else {
		state, err = engine.Reduce(state, engine.EditFrom{Text: amount})
	}
	if err != nil {
		return Conversion{}, err
	}

	q, err := s.rates.Quote(ctx, from, to)
	if err != nil {
		return Conversion{}, fmt.Errorf("convert [%v/%v]: %w", from, to, err)
	}

	rate := q.Buy
	if side == engine.To {
		rate = q.Sell
	}

	return Conversion{
		Quote:   q,
		Amounts: engine.Derive(state, &q),
		Rate:    rate,
	}, nil
}
