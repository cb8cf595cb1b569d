package session

import (
	"go-currency-converter/domain"
	"go-currency-converter/engine"
)

// View everything a client needs to draw the conversion form
type View struct {
	ID      string
	State   engine.State
	Amounts engine.Amounts

	// FromDisplay and ToDisplay the amounts formatted as currency
	FromDisplay string
	ToDisplay   string

	// Quote the quote for the current pair, nil until one resolves
	Quote *domain.Quote

	// Loading a fetch is in flight and no quote is available; inputs and pickers are disabled
	Loading bool
	// Refreshing a fetch is in flight while an older quote is still shown
	Refreshing bool
	// Error the last fetch for the current pair failed; the form is replaced by this message
	Error string

	CanCommit bool

	CountdownVisible bool
	CountdownSeconds int

	FromOptions []engine.Option
	ToOptions   []engine.Option

	HistoryLen int
}

// view must hold lock
func (s *Session) view() View {
	q := s.currentQuote()
	fetching := s.fetching[s.state.Pair()] > 0
	amounts := engine.Derive(s.state, q)

	v := View{
		ID:          s.id,
		State:       s.state,
		Amounts:     amounts,
		FromDisplay: engine.FormatCurrency(amounts.From),
		ToDisplay:   engine.FormatCurrency(amounts.To),
		Quote:       q,
		Loading:     fetching && q == nil,
		Refreshing:  fetching && q != nil,
		CanCommit:   engine.CanCommit(s.state, q, fetching),
		FromOptions: engine.Options(s.state, engine.From),
		ToOptions:   engine.Options(s.state, engine.To),
		HistoryLen:  s.history.Len(),
	}
	if err, ok := s.failures[s.state.Pair()]; ok {
		v.Error = err.Error()
	}
	if s.timer != nil && s.timer.key == s.state.Pair() {
		v.CountdownVisible = true
		v.CountdownSeconds = s.timer.countdown.Remaining
	}
	return v
}
