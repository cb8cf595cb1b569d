package engine

import (
	"fmt"
	"go-currency-converter/domain"
	"sync"
	"time"
)

// present a displayed amount that can be committed
func present(amount string) bool {
	return amount != "" && amount != "0"
}

// CanCommit reports whether the "perform conversion" action is enabled: a quote for the current
// pair exists, no fetch is in flight, and both displayed amounts are present.
func CanCommit(s State, q *domain.Quote, fetching bool) bool {
	if !current(s, q) || fetching {
		return false
	}
	a := Derive(s, q)
	return present(a.From) && present(a.To)
}

// Commit snapshots the displayed conversion into a record. The rate recorded is the quote's
// buy rate when the user drove the "from" side and its sell rate otherwise.
func Commit(s State, q *domain.Quote, fetching bool, id string, now time.Time) (domain.ConversionRecord, error) {
	if !CanCommit(s, q, fetching) {
		return domain.ConversionRecord{}, fmt.Errorf("commit [%v]: %w", s.Pair(), domain.ErrCommitDisabled)
	}
	a := Derive(s, q)

	rate := q.Buy
	if s.Driving == To {
		rate = q.Sell
	}

	return domain.ConversionRecord{
		ID:           id,
		FromCurrency: s.From,
		ToCurrency:   s.To,
		FromAmount:   a.From,
		ToAmount:     a.To,
		Rate:         rate,
		Timestamp:    now,
	}, nil
}

// History an append-only list of committed conversions, safe for concurrent use
type History struct {
	lock    sync.RWMutex
	records []domain.ConversionRecord
}

// Append adds a record to the end of the history
func (h *History) Append(r domain.ConversionRecord) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.records = append(h.records, r)
}

// Records returns a copy of the history in commit order
func (h *History) Records() []domain.ConversionRecord {
	h.lock.RLock()
	defer h.lock.RUnlock()
	out := make([]domain.ConversionRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len the number of committed conversions
func (h *History) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.records)
}
