package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxDetail is the fully computed tax breakdown for one base amount. It is
// a transient value, never persisted on its own.
type TaxDetail struct {
	Country     string
	RatePercent decimal.Decimal
	Base        decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// TaxCalculator resolves country tax rates and computes tax amounts.
// The rate table is injected at construction so the calculator stays pure;
// lookups never fail, unknown or blank countries fall back to DefaultRate.
type TaxCalculator struct {
	rates       map[string]decimal.Decimal
	defaultRate decimal.Decimal
}

// DefaultRate is the rate applied when no country-specific entry exists.
var DefaultRate = decimal.RequireFromString("21.00")

func NewTaxCalculator(rates map[string]decimal.Decimal, defaultRate decimal.Decimal) *TaxCalculator {
	cloned := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		cloned[normalizeCountry(code)] = rate
	}
	return &TaxCalculator{
		rates:       cloned,
		defaultRate: defaultRate,
	}
}

// NewDefaultTaxCalculator builds a calculator over the built-in rate table.
func NewDefaultTaxCalculator() *TaxCalculator {
	return NewTaxCalculator(DefaultTaxRates(), DefaultRate)
}

// RateFor returns the tax rate percent for a country code. Blank or
// unknown codes yield the default rate.
func (c *TaxCalculator) RateFor(countryCode string) decimal.Decimal {
	code := normalizeCountry(countryCode)
	if code == "" {
		return c.defaultRate
	}
	if rate, ok := c.rates[code]; ok {
		return rate
	}
	return c.defaultRate
}

// TaxFor computes the tax amount for a base amount, rounded half-up to two
// decimal places.
func (c *TaxCalculator) TaxFor(baseAmount decimal.Decimal, countryCode string) decimal.Decimal {
	rate := c.RateFor(countryCode)
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts billed here.
	return baseAmount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

// TotalFor computes base plus tax.
func (c *TaxCalculator) TotalFor(baseAmount decimal.Decimal, countryCode string) decimal.Decimal {
	return baseAmount.Add(c.TaxFor(baseAmount, countryCode))
}

// Detail computes the full tax breakdown. The tax amount is rounded once;
// the total is base plus that rounded tax, never re-derived.
func (c *TaxCalculator) Detail(baseAmount decimal.Decimal, countryCode string) TaxDetail {
	rate := c.RateFor(countryCode)
	tax := c.TaxFor(baseAmount, countryCode)
	return TaxDetail{
		Country:     countryCode,
		RatePercent: rate,
		Base:        baseAmount,
		Tax:         tax,
		Total:       baseAmount.Add(tax),
	}
}

// IsConfigured reports whether the country has an explicit rate entry,
// distinguishing a known 0% country from an unknown, defaulted one.
func (c *TaxCalculator) IsConfigured(countryCode string) bool {
	code := normalizeCountry(countryCode)
	if code == "" {
		return false
	}
	_, ok := c.rates[code]
	return ok
}

// AllRates returns a copy of the configured rate table.
func (c *TaxCalculator) AllRates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
