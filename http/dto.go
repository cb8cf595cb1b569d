package http

import (
	"fmt"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"go-currency-converter/rates"
	"go-currency-converter/session"
	"time"

	"github.com/go-playground/validator/v10"
)

// newValidator registers the "currency" tag for catalog codes. It panics if the tag cannot be
// registered.
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return domain.Supported(domain.Currency(fl.Field().String()))
	})
	if err != nil {
		panic(fmt.Sprintf("registering currency validation: %v", err))
	}
	return v
}

// errorResponse body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

type currencyResponse struct {
	Code  domain.Currency `json:"code"`
	Label string          `json:"label"`
	Icon  string          `json:"icon"`
	Alt   string          `json:"alt"`
	Text  string          `json:"text"`
}

func newCurrencyResponse(info domain.CurrencyInfo) currencyResponse {
	return currencyResponse{
		Code:  info.Code,
		Label: info.Label,
		Icon:  info.Icon,
		Alt:   info.Alt,
		Text:  info.Text,
	}
}

type rateQuery struct {
	Currency    domain.Currency `validate:"required,currency"`
	DesCurrency domain.Currency `validate:"required,currency"`
}

type convertRequest struct {
	FromCurrency domain.Currency `json:"fromCurrency" validate:"required,currency"`
	ToCurrency   domain.Currency `json:"toCurrency" validate:"required,currency"`
	Amount       string          `json:"amount"`
	Side         engine.Side     `json:"side" validate:"omitempty,oneof=from to"`
}

type convertResponse struct {
	FromCurrency domain.Currency `json:"fromCurrency"`
	ToCurrency   domain.Currency `json:"toCurrency"`
	FromAmount   string          `json:"fromAmount"`
	ToAmount     string          `json:"toAmount"`
	FromDisplay  string          `json:"fromDisplay"`
	ToDisplay    string          `json:"toDisplay"`
	Rate         domain.Rate     `json:"rate"`
	RateDisplay  string          `json:"rateDisplay"`
	Label        string          `json:"label"`
}

// eventRequest one form action; value carries the typed text or the picked currency
type eventRequest struct {
	Type  string `json:"type" validate:"required,oneof=edit_from edit_to invert select_from select_to"`
	Value string `json:"value"`
}

func (r eventRequest) event() (engine.Event, error) {
	switch r.Type {
	case "edit_from":
		return engine.EditFrom{Text: r.Value}, nil
	case "edit_to":
		return engine.EditTo{Text: r.Value}, nil
	case "invert":
		return engine.Invert{}, nil
	case "select_from":
		return engine.SelectFrom{Currency: domain.Currency(r.Value)}, nil
	case "select_to":
		return engine.SelectTo{Currency: domain.Currency(r.Value)}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", r.Type)
}

type optionResponse struct {
	currencyResponse
	Disabled bool `json:"disabled"`
}

func newOptions(options []engine.Option) []optionResponse {
	out := make([]optionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, optionResponse{currencyResponse: newCurrencyResponse(o.CurrencyInfo), Disabled: o.Disabled})
	}
	return out
}

type viewResponse struct {
	ID               string           `json:"id"`
	FromCurrency     domain.Currency  `json:"fromCurrency"`
	ToCurrency       domain.Currency  `json:"toCurrency"`
	Driving          engine.Side      `json:"driving"`
	FromAmount       string           `json:"fromAmount"`
	ToAmount         string           `json:"toAmount"`
	FromDisplay      string           `json:"fromDisplay"`
	ToDisplay        string           `json:"toDisplay"`
	Quote            *rates.Response  `json:"quote,omitempty"`
	Loading          bool             `json:"loading"`
	Refreshing       bool             `json:"refreshing"`
	Error            string           `json:"error,omitempty"`
	CanCommit        bool             `json:"canCommit"`
	CountdownVisible bool             `json:"countdownVisible"`
	CountdownSeconds int              `json:"countdownSeconds"`
	FromOptions      []optionResponse `json:"fromOptions"`
	ToOptions        []optionResponse `json:"toOptions"`
	HistoryLen       int              `json:"historyLen"`
}

func newViewResponse(v session.View) viewResponse {
	r := viewResponse{
		ID:               v.ID,
		FromCurrency:     v.State.From,
		ToCurrency:       v.State.To,
		Driving:          v.State.Driving,
		FromAmount:       v.Amounts.From,
		ToAmount:         v.Amounts.To,
		FromDisplay:      v.FromDisplay,
		ToDisplay:        v.ToDisplay,
		Loading:          v.Loading,
		Refreshing:       v.Refreshing,
		Error:            v.Error,
		CanCommit:        v.CanCommit,
		CountdownVisible: v.CountdownVisible,
		CountdownSeconds: v.CountdownSeconds,
		FromOptions:      newOptions(v.FromOptions),
		ToOptions:        newOptions(v.ToOptions),
		HistoryLen:       v.HistoryLen,
	}
	if v.Quote != nil {
		q := rates.NewResponse(*v.Quote)
		r.Quote = &q
	}
	return r
}

type recordResponse struct {
	ID           string          `json:"id"`
	FromCurrency domain.Currency `json:"fromCurrency"`
	ToCurrency   domain.Currency `json:"toCurrency"`
	FromAmount   string          `json:"fromAmount"`
	ToAmount     string          `json:"toAmount"`
	Rate         domain.Rate     `json:"rate"`
	RateDisplay  string          `json:"rateDisplay"`
	Timestamp    time.Time       `json:"timestamp"`
}

func newRecordResponse(r domain.ConversionRecord) recordResponse {
	return recordResponse{
		ID:           r.ID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		FromAmount:   r.FromAmount,
		ToAmount:     r.ToAmount,
		Rate:         r.Rate,
		RateDisplay:  engine.FormatRate(r.Rate),
		Timestamp:    r.Timestamp,
	}
}
