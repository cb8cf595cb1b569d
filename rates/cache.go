package rates

import (
	"context"
	"fmt"
	"go-currency-converter/domain"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingService decorates a Service with a cache of the last quote per pair.
// Every Quote call fetches, but concurrent calls for the same pair share one in-flight request.
// The CachingService is concurrency safe.
type CachingService struct {
	// next the service being decorated with a cache
	next Service

	// inflight holds at most one outstanding fetch per pair
	inflight singleflight.Group

	// cache the last resolved quote per pair
	cache map[domain.Pair]domain.Quote

	// lock synchronizes access to cache
	lock sync.RWMutex
}

// NewCachingService returns a new caching Service
func NewCachingService(s Service) *CachingService {
	return &CachingService{
		next:  s,
		cache: map[domain.Pair]domain.Quote{},
	}
}

// Quote fetches a fresh quote for the pair and caches it
func (s *CachingService) Quote(ctx context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error) {
	pair := domain.Pair{From: from, To: to}
	v, err, _ := s.inflight.Do(pair.String(), func() (interface{}, error) {
		return s.refreshNow(ctx, pair)
	})
	if err != nil {
		return domain.Quote{}, err
	}
	return v.(domain.Quote), nil
}

// Cached returns the last resolved quote for the pair without fetching
func (s *CachingService) Cached(pair domain.Pair) (domain.Quote, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	q, ok := s.cache[pair]
	return q, ok
}

// refreshNow refreshes a cached entry immediately
func (s *CachingService) refreshNow(ctx context.Context, pair domain.Pair) (domain.Quote, error) {
	q, err := s.next.Quote(ctx, pair.From, pair.To)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("refresh [%v]: %w", pair, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.cache[pair] = q
	return q, nil
}
