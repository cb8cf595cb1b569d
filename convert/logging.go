package convert

import (
	"context"
	"go-currency-converter/domain"
	"go-currency-converter/engine"
	"time"

	"github.com/go-kit/log"
)

// loggingService decorates a convert.Service with logging
type loggingService struct {
	logger log.Logger
	next   Service
}

// NewLoggingService returns a new instance of a logging Service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Convert(ctx context.Context, amount string, from domain.Currency, to domain.Currency, side engine.Side) (c Conversion, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"amount", amount,
			"from", from,
			"to", to,
			"side", side,
			"rate", c.Rate,
			"from_amount", c.Amounts.From,
			"to_amount", c.Amounts.To,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, amount, from, to, side)
}
