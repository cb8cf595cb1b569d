package rates

import (
	"fmt"
	"go-currency-converter/domain"
)

// baseRates direct mid-market rates, one entry per unordered pair
var baseRates = map[domain.Pair]float64{
	{From: domain.USD, To: domain.MXN}: 19.5,
	{From: domain.EUR, To: domain.USD}: 1.18,
}

// maxHubHops bounds cross-rate composition. One hop through the hub covers the whole catalog.
// If the catalog grows past that, resolve an adjacency map up front instead.
const maxHubHops = 1

// BaseRate resolves the mid-market rate for converting from into to.
func BaseRate(from domain.Currency, to domain.Currency) (float64, error) {
	return baseRate(from, to, maxHubHops)
}

func baseRate(from domain.Currency, to domain.Currency, hops int) (float64, error) {
	if from == to {
		return 1, nil
	}
	pair := domain.Pair{From: from, To: to}
	if rate, ok := baseRates[pair]; ok {
		return rate, nil
	}
	if rate, ok := baseRates[pair.Inverse()]; ok {
		return 1 / rate, nil
	}
	if hops > 0 && from != domain.Hub && to != domain.Hub {
		toHub, err := baseRate(from, domain.Hub, hops-1)
		if err != nil {
			return 0, err
		}
		fromHub, err := baseRate(domain.Hub, to, hops-1)
		if err != nil {
			return 0, err
		}
		return toHub * fromHub, nil
	}
	return 0, fmt.Errorf("%v to %v: %w", from, to, domain.ErrRateUnavailable)
}

// IsMainCurrency reports whether source is the conventionally quoted side of the pair:
// EUR always, USD unless the target is EUR.
func IsMainCurrency(source domain.Currency, target domain.Currency) bool {
	return source == domain.EUR || (source == domain.USD && target != domain.EUR)
}
