// Package engine holds the conversion widget's logic as pure functions: the state machine over
// the driving side, the derived-amount rule, commit, the refresh countdown and display helpers.
// Nothing here blocks, fetches or keeps time.
package engine

import (
	"fmt"
	"go-currency-converter/domain"
)

// Side identifies one of the two amount fields
type Side string

const (
	From Side = "from"
	To   Side = "to"
)

// State the session-scoped conversion state. The non-driving amount is never stored, see Derive.
type State struct {
	From    domain.Currency
	To      domain.Currency
	Driving Side
	Amount  string
}

// NewState returns the state a fresh widget starts in
func NewState() State {
	return State{
		From:    domain.USD,
		To:      domain.MXN,
		Driving: From,
		Amount:  "0",
	}
}

// Pair the currency pair the state is quoting
func (s State) Pair() domain.Pair {
	return domain.Pair{From: s.From, To: s.To}
}

// Event a user action on the conversion form
type Event interface {
	apply(s State) (State, error)
}

// EditFrom the user typed into the "from" amount field
type EditFrom struct{ Text string }

// EditTo the user typed into the "to" amount field
type EditTo struct{ Text string }

// Invert the user swapped the pair
type Invert struct{}

// SelectFrom the user picked a "from" currency
type SelectFrom struct{ Currency domain.Currency }

// SelectTo the user picked a "to" currency
type SelectTo struct{ Currency domain.Currency }

// Reduce applies an event to a state. The input state is never modified.
func Reduce(s State, e Event) (State, error) {
	return e.apply(s)
}

func (e EditFrom) apply(s State) (State, error) {
	s.Driving = From
	s.Amount = e.Text
	return s, nil
}

func (e EditTo) apply(s State) (State, error) {
	s.Driving = To
	s.Amount = e.Text
	return s, nil
}

func (Invert) apply(s State) (State, error) {
	s.From, s.To = s.To, s.From
	s.Amount = "0"
	s.Driving = From
	return s, nil
}

func (e SelectFrom) apply(s State) (State, error) {
	if err := selectable(e.Currency, s.To); err != nil {
		return s, fmt.Errorf("select from [%v]: %w", e.Currency, err)
	}
	s.From = e.Currency
	return s, nil
}

func (e SelectTo) apply(s State) (State, error) {
	if err := selectable(e.Currency, s.From); err != nil {
		return s, fmt.Errorf("select to [%v]: %w", e.Currency, err)
	}
	s.To = e.Currency
	return s, nil
}

// selectable enforces that the two sides never hold the same currency
func selectable(c domain.Currency, opposite domain.Currency) error {
	if !domain.Supported(c) {
		return domain.ErrUnknownCurrency
	}
	if c == opposite {
		return domain.ErrCurrencyDisabled
	}
	return nil
}
