package engine

import (
	"go-currency-converter/domain"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usdMxn() *domain.Quote {
	return &domain.Quote{
		Source:         domain.USD,
		Target:         domain.MXN,
		Buy:            19.11,
		Sell:           19.89,
		IsMainCurrency: true,
		Label:          "1 USD = $ 19.11 MXN",
	}
}

func mxnUsd() *domain.Quote {
	return &domain.Quote{
		Source:         domain.MXN,
		Target:         domain.USD,
		Buy:            19.89,
		Sell:           19.11,
		IsMainCurrency: false,
		Label:          "1 USD = $ 19.89 MXN",
	}
}

func TestDeriveAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		buy    domain.Rate
		sell   domain.Rate
		isMain bool
		want   string
	}{
		{"main currency", "100", 19.11, 19.89, true, "1911.000"},
		{"other currency", "100", 19.89, 19.11, false, "5.028"},
		{"fraction", "0.5", 19.11, 19.89, true, "9.555"},
		{"empty", "", 19.11, 19.89, true, ""},
		{"zero", "0", 19.11, 19.89, true, ""},
		{"not a number", "abc", 19.11, 19.89, true, ""},
		{"leading number", "12abc", 2, 3, true, "24.000"},
		{"zero with decimals is a value", "0.0", 19.11, 19.89, true, "0.000"},
		{"no buy rate", "100", 0, 19.89, true, ""},
		{"no sell rate", "100", 19.11, 0, true, ""},
		{"sell rate ignored", "10", 2, 1000, true, "20.000"},
		{"negative", "-10", 2, 3, true, "-20.000"},
		{"exponent", "1e2", 2, 3, true, "200.000"},
		{"leading whitespace", "  7", 2, 3, true, "14.000"},
		{"tie rounds up", "0.125", 22.5, 23.47, true, "2.813"},
		{"negative tie rounds away from zero", "-0.125", 22.5, 23.47, true, "-2.813"},
		{"infinity", "Infinity", 2, 3, true, "Infinity"},
		{"overflow", "1e400", 2, 3, false, "Infinity"},
		{"exponent form from 1e21", "1e21", 2, 3, true, "2e+21"},
		{"fixed form below 1e21", "1e20", 2, 3, true, "200000000000000000000.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAmount(tt.amount, tt.buy, tt.sell, tt.isMain))
		})
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		state State
		quote *domain.Quote
		want  Amounts
	}{
		{
			"usd drives mxn",
			State{From: domain.USD, To: domain.MXN, Driving: From, Amount: "100"},
			usdMxn(),
			Amounts{From: "100", To: "1911.000"},
		},
		{
			"mxn drives usd",
			State{From: domain.USD, To: domain.MXN, Driving: To, Amount: "1911"},
			usdMxn(),
			Amounts{From: "100.000", To: "1911"},
		},
		{
			"non main source drives",
			State{From: domain.MXN, To: domain.USD, Driving: From, Amount: "100"},
			mxnUsd(),
			Amounts{From: "100", To: "5.028"},
		},
		{
			"non main target drives",
			State{From: domain.MXN, To: domain.USD, Driving: To, Amount: "10"},
			mxnUsd(),
			Amounts{From: "198.900", To: "10"},
		},
		{
			"no quote",
			State{From: domain.USD, To: domain.MXN, Driving: From, Amount: "100"},
			nil,
			Amounts{From: "100", To: ""},
		},
		{
			"stale quote for another pair",
			State{From: domain.USD, To: domain.EUR, Driving: From, Amount: "100"},
			usdMxn(),
			Amounts{From: "100", To: ""},
		},
		{
			"initial state",
			NewState(),
			usdMxn(),
			Amounts{From: "0", To: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.state, tt.quote))
		})
	}
}

func TestDerive_RoundTrip(t *testing.T) {
	for _, q := range []*domain.Quote{usdMxn(), mxnUsd()} {
		for _, amount := range []string{"1", "100", "2500.5", "0.25"} {
			s := State{From: q.Source, To: q.Target, Driving: From, Amount: amount}
			forward := Derive(s, q)

			s, _ = Reduce(s, EditTo{Text: forward.To})
			back := Derive(s, q)

			want, err := strconv.ParseFloat(amount, 64)
			require.NoError(t, err)
			got, err := strconv.ParseFloat(back.From, 64)
			require.NoError(t, err)
			// the forward leg is rounded to 3 decimals before the reverse leg scales it back
			assert.InDelta(t, want, got, 0.001*float64(q.Buy), "%v %v", q.Pair(), amount)
		}
	}
}

func TestDerive_InputsSuppressDerivedAmount(t *testing.T) {
	for _, text := range []string{"0", "", "abc", "--1"} {
		for _, side := range []Event{EditFrom{Text: text}, EditTo{Text: text}} {
			s, err := Reduce(NewState(), side)
			require.NoError(t, err)
			a := Derive(s, usdMxn())
			if s.Driving == From {
				assert.Equal(t, "", a.To, "%q", text)
			} else {
				assert.Equal(t, "", a.From, "%q", text)
			}
		}
	}
}

func TestCommit(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := State{From: domain.USD, To: domain.MXN, Driving: From, Amount: "100"}

	r, err := Commit(s, usdMxn(), false, "id-1", now)

	require.NoError(t, err)
	assert.Equal(t, domain.ConversionRecord{
		ID:           "id-1",
		FromCurrency: domain.USD,
		ToCurrency:   domain.MXN,
		FromAmount:   "100",
		ToAmount:     "1911.000",
		Rate:         19.11,
		Timestamp:    now,
	}, r)
}

func TestCommit_DrivenFromToUsesSell(t *testing.T) {
	s := State{From: domain.USD, To: domain.MXN, Driving: To, Amount: "1911"}

	r, err := Commit(s, usdMxn(), false, "id-2", time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.Rate(19.89), r.Rate)
	assert.Equal(t, "100.000", r.FromAmount)
	assert.Equal(t, "1911", r.ToAmount)
}

func TestCanCommit(t *testing.T) {
	ready := State{From: domain.USD, To: domain.MXN, Driving: From, Amount: "100"}

	assert.True(t, CanCommit(ready, usdMxn(), false))
	assert.False(t, CanCommit(ready, usdMxn(), true), "fetch in flight")
	assert.False(t, CanCommit(ready, nil, false), "no quote")
	assert.False(t, CanCommit(ready, mxnUsd(), false), "stale quote")
	assert.False(t, CanCommit(NewState(), usdMxn(), false), "initial zero")

	empty, _ := Reduce(ready, EditFrom{Text: ""})
	assert.False(t, CanCommit(empty, usdMxn(), false), "empty")

	_, err := Commit(empty, usdMxn(), false, "x", time.Now())
	assert.ErrorIs(t, err, domain.ErrCommitDisabled)
}

func TestHistory(t *testing.T) {
	var h History
	q := usdMxn()
	s := State{From: domain.USD, To: domain.MXN, Driving: From, Amount: "100"}

	first, err := Commit(s, q, false, "1", time.Now())
	require.NoError(t, err)
	h.Append(first)

	s, _ = Reduce(s, EditFrom{Text: "200"})
	second, err := Commit(s, q, false, "2", time.Now())
	require.NoError(t, err)
	h.Append(second)

	records := h.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, first, records[0])
	assert.Equal(t, "100", records[0].FromAmount)
	assert.Equal(t, "200", records[1].FromAmount)
	assert.Equal(t, "3822.000", records[1].ToAmount)

	// callers get a copy
	records[0].FromAmount = "999"
	assert.Equal(t, "100", h.Records()[0].FromAmount)
}
