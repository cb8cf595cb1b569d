package rates

import (
	"context"
	"go-currency-converter/domain"
	"time"

	"github.com/go-kit/log"
)

// loggingService decorates a rates.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Quote(ctx context.Context, from domain.Currency, to domain.Currency) (q domain.Quote, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "quote",
			"from", from,
			"to", to,
			"buy", q.Buy,
			"sell", q.Sell,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Quote(ctx, from, to)
}
