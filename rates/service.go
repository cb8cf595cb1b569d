package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"go-currency-converter/domain"
	"io"
	"net/http"
	"net/url"
	"time"
)

const ApiUrlBase = "https://sandbox.efexpay.com"

// Service produces buy/sell quotes for a currency pair
type Service interface {
	Quote(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error)
}

// remoteService realtime rate REST API
type remoteService struct {
	// url base API url
	url string

	// client for HTTP requests
	client http.Client
}

// NewRemoteService constructs a Service backed by the realtime rate endpoint at baseURL.
// An empty baseURL selects ApiUrlBase.
func NewRemoteService(baseURL string) Service {
	if baseURL == "" {
		baseURL = ApiUrlBase
	}
	return &remoteService{
		url: baseURL,
		client: http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Response the wire shape of a realtime rate quote
type Response struct {
	Buy            float64 `json:"buy"`
	Sell           float64 `json:"sell"`
	ExchangeLabel  string  `json:"exchange_label"`
	Reference      *string `json:"reference"`
	CreatedAt      *string `json:"created_at"`
	Currency       string  `json:"currency"`
	DesCurrency    string  `json:"des_currency"`
	IsMainCurrency bool    `json:"is_main_currency"`
	CountryAccount string  `json:"country_account"`
}

// NewResponse renders a quote in its wire shape
func NewResponse(q domain.Quote) Response {
	r := Response{
		Buy:            float64(q.Buy),
		Sell:           float64(q.Sell),
		ExchangeLabel:  q.Label,
		Reference:      q.Reference,
		Currency:       string(q.Source),
		DesCurrency:    string(q.Target),
		IsMainCurrency: q.IsMainCurrency,
		CountryAccount: q.CountryAccount,
	}
	if q.CreatedAt != nil {
		ts := q.CreatedAt.UTC().Format(time.RFC3339Nano)
		r.CreatedAt = &ts
	}
	return r
}

// Quote converts the wire shape back into a domain.Quote
func (r Response) Quote() (domain.Quote, error) {
	q := domain.Quote{
		Source:         domain.Currency(r.Currency),
		Target:         domain.Currency(r.DesCurrency),
		Buy:            domain.Rate(r.Buy),
		Sell:           domain.Rate(r.Sell),
		IsMainCurrency: r.IsMainCurrency,
		Label:          r.ExchangeLabel,
		Reference:      r.Reference,
		CountryAccount: r.CountryAccount,
	}
	if r.CreatedAt != nil {
		ts, err := time.Parse(time.RFC3339, *r.CreatedAt)
		if err != nil {
			return domain.Quote{}, fmt.Errorf("bad created_at value: %w", err)
		}
		q.CreatedAt = &ts
	}
	return q, nil
}

// Quote loads the current quote for a currency pair.
func (s *remoteService) Quote(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error) {
	query := url.Values{}
	query.Set("currency", string(from))
	query.Set("des_currency", string(to))
	u := fmt.Sprintf("%v/api/public/realtime/rate/?%v", s.url, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("building http request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Cache-Control", "no-cache")

	httpResponse, err := s.client.Do(request)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode == http.StatusNotFound {
		return domain.Quote{}, fmt.Errorf("%v to %v: %w", from, to, domain.ErrRateUnavailable)
	}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return domain.Quote{}, fmt.Errorf("http status %d", httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("reading json: %w", err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("decoding json: %w", err)
	}

	return response.Quote()
}
