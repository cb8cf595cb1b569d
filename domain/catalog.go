package domain

const (
	MXN Currency = "MXN"
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Hub the currency cross rates are composed through
const Hub = USD

// CurrencyInfo display data for one supported currency
type CurrencyInfo struct {
	Code  Currency
	Label string
	Icon  string
	Alt   string
	Text  string
}

var catalog = []CurrencyInfo{
	{Code: MXN, Label: "MXN", Icon: "mexico.svg", Alt: "Mexico flag", Text: "Pesos mexicanos"},
	{Code: USD, Label: "USD", Icon: "usa.svg", Alt: "USA flag", Text: "USD dólares"},
	{Code: EUR, Label: "EUR", Icon: "eur.svg", Alt: "Euro flag", Text: "Euros"},
}

// Catalog returns the supported currencies in display order.
// The returned slice is a copy and may be modified by the caller.
func Catalog() []CurrencyInfo {
	out := make([]CurrencyInfo, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the catalog entry for a currency code
func Lookup(c Currency) (CurrencyInfo, bool) {
	for _, info := range catalog {
		if info.Code == c {
			return info, true
		}
	}
	return CurrencyInfo{}, false
}

// Supported reports whether c is in the catalog
func Supported(c Currency) bool {
	_, ok := Lookup(c)
	return ok
}
