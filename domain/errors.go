package domain

import "errors"

var (
	// ErrRateUnavailable no base rate could be resolved for a pair, even through the hub currency
	ErrRateUnavailable = errors.New("no rate available")

	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrCurrencyDisabled = errors.New("currency is selected on the other side")
	ErrCommitDisabled   = errors.New("conversion is not available")
	ErrInputDisabled    = errors.New("inputs are disabled while the rate loads")
	ErrSessionNotFound  = errors.New("session not found")
)
