package rates

import (
	"context"
	"errors"
	"go-currency-converter/domain"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mock struct {
	count   int32
	delay   time.Duration
	failing bool
}

func (m *mock) Quote(_ context.Context, from domain.Currency, to domain.Currency) (domain.Quote, error) {
	n := atomic.AddInt32(&m.count, 1)
	time.Sleep(m.delay)
	if m.failing {
		return domain.Quote{}, errors.New("boom")
	}
	return domain.Quote{Source: from, Target: to, Buy: domain.Rate(n), Sell: domain.Rate(n)}, nil
}

func TestCachingService_Quote(t *testing.T) {
	var underlying mock
	s := NewCachingService(&underlying)
	pair := domain.Pair{From: domain.USD, To: domain.MXN}

	_, ok := s.Cached(pair)
	assert.False(t, ok)

	q, err := s.Quote(context.Background(), domain.USD, domain.MXN)
	require.NoError(t, err)
	assert.Equal(t, domain.Rate(1), q.Buy)

	cached, ok := s.Cached(pair)
	assert.True(t, ok)
	assert.Equal(t, q, cached)

	// every Quote call is a refresh
	q, err = s.Quote(context.Background(), domain.USD, domain.MXN)
	require.NoError(t, err)
	assert.Equal(t, domain.Rate(2), q.Buy)
	assert.Equal(t, int32(2), atomic.LoadInt32(&underlying.count))
}

func TestCachingService_SharesInFlightRequest(t *testing.T) {
	underlying := mock{delay: 50 * time.Millisecond}
	s := NewCachingService(&underlying)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Quote(context.Background(), domain.USD, domain.MXN)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&underlying.count))
}

func TestCachingService_KeyedByPair(t *testing.T) {
	var underlying mock
	s := NewCachingService(&underlying)

	_, _ = s.Quote(context.Background(), domain.USD, domain.MXN)
	_, _ = s.Quote(context.Background(), domain.MXN, domain.USD)

	_, ok := s.Cached(domain.Pair{From: domain.USD, To: domain.MXN})
	assert.True(t, ok)
	_, ok = s.Cached(domain.Pair{From: domain.MXN, To: domain.USD})
	assert.True(t, ok)
	_, ok = s.Cached(domain.Pair{From: domain.EUR, To: domain.USD})
	assert.False(t, ok)
}

func TestCachingService_ErrorKeepsLastQuote(t *testing.T) {
	var underlying mock
	s := NewCachingService(&underlying)
	first, err := s.Quote(context.Background(), domain.USD, domain.MXN)
	require.NoError(t, err)

	underlying.failing = true
	_, err = s.Quote(context.Background(), domain.USD, domain.MXN)
	assert.ErrorContains(t, err, "refresh [USD/MXN]")

	cached, ok := s.Cached(domain.Pair{From: domain.USD, To: domain.MXN})
	assert.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestDecorators_PassThrough(t *testing.T) {
	var underlying mock
	s := NewInstrumentingService(NewLoggingService(log.NewNopLogger(), &underlying))

	q, err := s.Quote(context.Background(), domain.EUR, domain.USD)

	require.NoError(t, err)
	assert.Equal(t, domain.EUR, q.Source)
	assert.Equal(t, int32(1), underlying.count)

	underlying.failing = true
	_, err = s.Quote(context.Background(), domain.EUR, domain.USD)
	assert.Error(t, err)
}
