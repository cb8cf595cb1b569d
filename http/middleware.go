package http

import (
	"net/http"
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "converter_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "converter_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
	}, []string{"method", "endpoint"})
)

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts and times requests by route template
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		timer := prometheus.NewTimer(httpLatency.WithLabelValues(r.Method, endpoint))
		defer timer.ObserveDuration()

		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		httpReqTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
	})
}

// rateLimit rejects clients that exceeded the configured request rate with 429
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		key := s.limiter.GetIPKey(r)

		ctx, err := s.limiter.Get(r.Context(), key)
		if err != nil {
			level.Error(s.Logger).Log("msg", "rate limit check failed", "ip", key, "err", err)
			s.respondError(rw, http.StatusInternalServerError, "rate limit check failed")
			return
		}

		rw.Header().Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		rw.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		rw.Header().Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			level.Warn(s.Logger).Log("msg", "rate limit exceeded", "ip", key, "limit", ctx.Limit)
			s.respondError(rw, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(rw, r)
	})
}
