package session

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"go-currency-converter/rates"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// Config session timing
type Config struct {
	// RefreshSeconds the countdown's initial value
	RefreshSeconds int

	// Tick how long one countdown second lasts
	Tick time.Duration
}

// DefaultConfig one-second ticks counting down from engine.DefaultRefreshSeconds
func DefaultConfig() Config {
	return Config{
		RefreshSeconds: engine.DefaultRefreshSeconds,
		Tick:           time.Second,
	}
}

// Session one conversion widget: its state, quote cache, refresh countdown and history.
// All methods are safe for concurrent use.
type Session struct {
	id     string
	cfg    Config
	quotes *rates.CachingService
	logger log.Logger
	now    func() time.Time

	// ctx lifetime of the session; cancelling it stops the countdown
	ctx    context.Context
	cancel context.CancelFunc

	lock     sync.Mutex
	state    engine.State
	fetching map[domain.Pair]int
	failures map[domain.Pair]error
	timer    *timer
	timerGen uint64
	history  engine.History
}

// timer the countdown bound to one pair. A superseded timer's ticks are dropped by generation.
type timer struct {
	key       domain.Pair
	gen       uint64
	countdown engine.Countdown
	cancel    context.CancelFunc
}

// New starts a session in the initial state and issues the first quote fetch.
func New(ctx context.Context, id string, quotes rates.Service, cfg Config, logger log.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:       id,
		cfg:      cfg,
		quotes:   rates.NewCachingService(quotes),
		logger:   log.With(logger, "session", id),
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		state:    engine.NewState(),
		fetching: map[domain.Pair]int{},
		failures: map[domain.Pair]error{},
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.fetch(s.state.Pair())
	return s
}

// ID the session identifier
func (s *Session) ID() string {
	return s.id
}

// View renders the current state
func (s *Session) View() View {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.view()
}

// Apply feeds a user event through the state machine. Changing the pair fetches a quote for
// the new pair and restarts the countdown.
func (s *Session) Apply(e engine.Event) (View, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, invert := e.(engine.Invert); !invert && s.loading() {
		return s.view(), fmt.Errorf("apply [%v]: %w", s.state.Pair(), domain.ErrInputDisabled)
	}

	next, err := engine.Reduce(s.state, e)
	if err != nil {
		return s.view(), err
	}

	previous := s.state.Pair()
	s.state = next
	if next.Pair() != previous {
		s.fetch(next.Pair())
	}
	s.syncTimer()
	return s.view(), nil
}

// Refresh re-issues the quote fetch for the current pair. It backs the retry action.
func (s *Session) Refresh() View {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.fetch(s.state.Pair())
	return s.view()
}

// Commit appends the displayed conversion to the history. The amounts are left as they are.
func (s *Session) Commit() (domain.ConversionRecord, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	q := s.currentQuote()
	record, err := engine.Commit(s.state, q, s.fetching[s.state.Pair()] > 0, uuid.NewString(), s.now())
	if err != nil {
		return domain.ConversionRecord{}, err
	}
	s.history.Append(record)
	return record, nil
}

// History the committed conversions in commit order
func (s *Session) History() []domain.ConversionRecord {
	return s.history.Records()
}

// Close stops the countdown and abandons any fetch in flight.
func (s *Session) Close() {
	s.cancel()
}

// fetch issues an asynchronous quote fetch. The result lands in the cache for its own pair, so
// a response for a pair the user has since left is never displayed. Must hold lock.
func (s *Session) fetch(pair domain.Pair) {
	s.fetching[pair]++
	go func() {
		_, err := s.quotes.Quote(s.ctx, pair.From, pair.To)

		s.lock.Lock()
		defer s.lock.Unlock()
		s.fetching[pair]--
		if err != nil {
			level.Warn(s.logger).Log("msg", "quote fetch failed", "pair", pair, "err", err)
			s.failures[pair] = err
		} else {
			delete(s.failures, pair)
		}
		s.syncTimer()
	}()
}

// currentQuote the cached quote for the current pair, if any. Must hold lock.
func (s *Session) currentQuote() *domain.Quote {
	q, ok := s.quotes.Cached(s.state.Pair())
	if !ok {
		return nil
	}
	return &q
}

// loading a fetch is in flight and there is nothing to show yet. Must hold lock.
func (s *Session) loading() bool {
	return s.fetching[s.state.Pair()] > 0 && s.currentQuote() == nil
}

// syncTimer runs the countdown exactly while it is visible, restarting it from the initial
// value whenever the pair changes or it reappears. Must hold lock.
func (s *Session) syncTimer() {
	visible := engine.CountdownVisible(engine.Derive(s.state, s.currentQuote()))
	key := s.state.Pair()

	if s.timer != nil && (!visible || s.timer.key != key) {
		s.timer.cancel()
		s.timer = nil
	}
	if !visible || s.timer != nil || s.ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.timerGen++
	s.timer = &timer{
		key:       key,
		gen:       s.timerGen,
		countdown: engine.NewCountdown(s.cfg.RefreshSeconds),
		cancel:    cancel,
	}
	go s.runTimer(ctx, s.timerGen)
}

func (s *Session) runTimer(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick(gen)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) tick(gen uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.timer == nil || s.timer.gen != gen {
		return
	}
	var due bool
	s.timer.countdown, due = s.timer.countdown.Tick()
	if due {
		level.Debug(s.logger).Log("msg", "refresh due", "pair", s.timer.key)
		s.fetch(s.timer.key)
	}
}
