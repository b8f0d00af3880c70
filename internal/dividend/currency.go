package dividend

import "strings"

// currencyBySuffix maps the country suffix after the last "." in a ticker to
// its display currency.
var currencyBySuffix = map[string]string{
	"PL": "PLN",
	"US": "$",
	"EU": "€",
}

// CurrencySymbol returns the currency symbol for a ticker based on its
// country suffix, defaulting to "$" for unsuffixed or unknown tickers.
func CurrencySymbol(ticker string) string {
	if idx := strings.LastIndex(ticker, "."); idx >= 0 {
		if sym, ok := currencyBySuffix[strings.ToUpper(ticker[idx+1:])]; ok {
			return sym
		}
	}
	return "$"
}
