package rates

import (
	"context"
	"go-currency-converter/domain"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_rate_requests_total",
		Help: "Total rate quote requests",
	}, []string{"source", "target", "status"})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "converter_rate_request_duration_seconds",
		Help:    "Rate quote latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	}, []string{"source", "target"})
)

// instrumentingService decorates a rates.Service with Prometheus metrics
type instrumentingService struct {
	next Service
}

// NewInstrumentingService returns a new instrumenting service
func NewInstrumentingService(s Service) Service {
	return &instrumentingService{next: s}
}

func (s *instrumentingService) Quote(ctx context.Context, from domain.Currency, to domain.Currency) (q domain.Quote, err error) {
	defer func(begin time.Time) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		requestCount.WithLabelValues(string(from), string(to), status).Inc()
		requestLatency.WithLabelValues(string(from), string(to)).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return s.next.Quote(ctx, from, to)
}
