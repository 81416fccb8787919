package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// rates is a directed table: only explicitly tabulated directions convert.
// The inverse of a known rate is NOT inferred; a missing direction falls
// back to 1:1 and is surfaced to operators through config validation
// warnings, not through the payment flow.
var rates = map[string]float64{
	"USD_EUR": 0.85,
	"USD_GBP": 0.79,
	"USD_KES": 129.0,
	"USD_NGN": 1550.0,
	"USD_GHS": 15.6,
	"USD_ZAR": 18.2,
	"USD_UGX": 3700.0,
	"USD_SEK": 10.4,
	"USD_CAD": 1.36,
	"USD_AUD": 1.52,
	"EUR_KES": 151.0,
	"EUR_GBP": 0.93,
	"GBP_KES": 163.0,
}

func key(from, to string) string {
	return strings.ToUpper(from) + "_" + strings.ToUpper(to)
}

// Convert converts amount from one currency code to another using the
// static rate table, rounding to 2 decimal places half-up. Identity when
// the codes match (exact, no rounding drift).
func Convert(amount float64, from, to string) float64 {
	if strings.EqualFold(from, to) {
		return amount
	}
	rate, ok := rates[key(from, to)]
	if !ok {
		rate = 1
	}
	converted := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	out, _ := converted.Round(2).Float64()
	return out
}

// HasRate reports whether the direction is explicitly tabulated.
// Matching codes always convert.
func HasRate(from, to string) bool {
	if strings.EqualFold(from, to) {
		return true
	}
	_, ok := rates[key(from, to)]
	return ok
}

// MissingRates returns the subset of codes with no tabulated rate from
// base, for the startup validation report.
func MissingRates(base string, codes []string) []string {
	var missing []string
	for _, c := range codes {
		if !HasRate(base, c) {
			missing = append(missing, strings.ToUpper(c))
		}
	}
	return missing
}
