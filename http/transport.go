package http

import (
	"encoding/json"
	"errors"
	"go-currency-converter/convert"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"go-currency-converter/rates"
	"go-currency-converter/session"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

// Sessions the live conversion widgets
type Sessions interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Close(id string) error
	Len() int
}

// Server dependencies for HTTP Server functions
type Server struct {
	Convert  convert.Service
	Rates    rates.Service
	Sessions Sessions
	Logger   log.Logger

	limiter  *limiter.Limiter
	router   *mux.Router
	validate *validator.Validate
}

// NewServer wires the routes. A nil limiter disables rate limiting.
func NewServer(c convert.Service, r rates.Service, sessions Sessions, l *limiter.Limiter, logger log.Logger) *Server {
	server := &Server{
		Convert:  c,
		Rates:    r,
		Sessions: sessions,
		Logger:   logger,
		limiter:  l,
		router:   mux.NewRouter(),
		validate: newValidator(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Use(s.instrument)
	s.router.HandleFunc("/health", s.health()).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	if s.limiter != nil {
		api.Use(s.rateLimit)
	}
	api.HandleFunc("/currencies", s.currencies()).Methods(http.MethodGet)
	api.HandleFunc("/rates", s.rate()).Methods(http.MethodGet)
	api.HandleFunc("/convert", s.convert()).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.createSession()).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", s.getSession()).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.deleteSession()).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/events", s.applyEvent()).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/refresh", s.refresh()).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/conversions", s.commit()).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/conversions", s.history()).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

func (s *Server) health() http.HandlerFunc {
	type response struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	return func(rw http.ResponseWriter, r *http.Request) {
		s.respondJSON(rw, http.StatusOK, response{Status: "ok", Sessions: s.Sessions.Len()})
	}
}

func (s *Server) currencies() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		catalog := domain.Catalog()
		out := make([]currencyResponse, 0, len(catalog))
		for _, info := range catalog {
			out = append(out, newCurrencyResponse(info))
		}
		s.respondJSON(rw, http.StatusOK, out)
	}
}

// rate produces HTTP handler answering one quote in the realtime rate wire shape
func (s *Server) rate() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		query := rateQuery{
			Currency:    domain.Currency(r.URL.Query().Get("currency")),
			DesCurrency: domain.Currency(r.URL.Query().Get("des_currency")),
		}
		if err := s.validate.Struct(query); err != nil {
			s.respondError(rw, http.StatusBadRequest, err.Error())
			return
		}

		q, err := s.Rates.Quote(r.Context(), query.Currency, query.DesCurrency)
		if err != nil {
			s.fail(rw, err)
			return
		}
		s.respondJSON(rw, http.StatusOK, rates.NewResponse(q))
	}
}

// convert produces HTTP handler for one-shot conversions
func (s *Server) convert() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var request convertRequest
		if !s.decode(rw, r, &request) {
			return
		}
		side := request.Side
		if side == "" {
			side = engine.From
		}

		result, err := s.Convert.Convert(r.Context(), request.Amount, request.FromCurrency, request.ToCurrency, side)
		if err != nil {
			s.fail(rw, err)
			return
		}

		s.respondJSON(rw, http.StatusOK, convertResponse{
			FromCurrency: request.FromCurrency,
			ToCurrency:   request.ToCurrency,
			FromAmount:   result.Amounts.From,
			ToAmount:     result.Amounts.To,
			FromDisplay:  engine.FormatCurrency(result.Amounts.From),
			ToDisplay:    engine.FormatCurrency(result.Amounts.To),
			Rate:         result.Rate,
			RateDisplay:  engine.FormatRate(result.Rate),
			Label:        result.Quote.Label,
		})
	}
}

func (s *Server) createSession() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess := s.Sessions.Create()
		rw.Header().Set("Location", "/api/sessions/"+sess.ID())
		s.respondJSON(rw, http.StatusCreated, newViewResponse(sess.View()))
	}
}

func (s *Server) getSession() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(rw, r)
		if !ok {
			return
		}
		s.respondJSON(rw, http.StatusOK, newViewResponse(sess.View()))
	}
}

func (s *Server) deleteSession() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := s.Sessions.Close(mux.Vars(r)["id"]); err != nil {
			s.fail(rw, err)
			return
		}
		rw.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) applyEvent() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(rw, r)
		if !ok {
			return
		}
		var request eventRequest
		if !s.decode(rw, r, &request) {
			return
		}
		event, err := request.event()
		if err != nil {
			s.respondError(rw, http.StatusBadRequest, err.Error())
			return
		}

		view, err := sess.Apply(event)
		if err != nil {
			s.fail(rw, err)
			return
		}
		s.respondJSON(rw, http.StatusOK, newViewResponse(view))
	}
}

func (s *Server) refresh() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(rw, r)
		if !ok {
			return
		}
		s.respondJSON(rw, http.StatusAccepted, newViewResponse(sess.Refresh()))
	}
}

func (s *Server) commit() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(rw, r)
		if !ok {
			return
		}
		record, err := sess.Commit()
		if err != nil {
			s.fail(rw, err)
			return
		}
		s.respondJSON(rw, http.StatusCreated, newRecordResponse(record))
	}
}

func (s *Server) history() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(rw, r)
		if !ok {
			return
		}
		records := sess.History()
		out := make([]recordResponse, 0, len(records))
		for _, record := range records {
			out = append(out, newRecordResponse(record))
		}
		s.respondJSON(rw, http.StatusOK, out)
	}
}

// session resolves the {id} route variable, answering 404 when it names no live session
func (s *Server) session(rw http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		s.fail(rw, err)
		return nil, false
	}
	return sess, true
}

// decode reads and validates a JSON body, answering 400 on failure
func (s *Server) decode(rw http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(rw, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.respondError(rw, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// statusOf maps domain errors onto HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCurrency), errors.Is(err, domain.ErrCurrencyDisabled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCommitDisabled), errors.Is(err, domain.ErrInputDisabled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(rw http.ResponseWriter, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		level.Error(s.Logger).Log("msg", "request failed", "err", err)
	}
	s.respondError(rw, code, err.Error())
}

func (s *Server) respondJSON(rw http.ResponseWriter, code int, payload interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	if err := json.NewEncoder(rw).Encode(payload); err != nil {
		level.Error(s.Logger).Log("msg", "failed json encoding", "err", err)
	}
}

func (s *Server) respondError(rw http.ResponseWriter, code int, msg string) {
	s.respondJSON(rw, code, errorResponse{Error: msg})
}
