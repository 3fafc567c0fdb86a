package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxCalculator_RateFor(t *testing.T) {
	calc := NewDefaultTaxCalculator()

	tests := []struct {
		name    string
		country string
		want    string
	}{
		{"spain", "ES", "21.00"},
		{"germany", "DE", "19.00"},
		{"united states", "US", "0.00"},
		{"switzerland", "CH", "7.70"},
		{"lowercase code", "de", "19.00"},
		{"padded code", " es ", "21.00"},
		{"unknown code", "ZZ", "21.00"},
		{"blank", "", "21.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.RateFor(tt.country)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"RateFor(%q) = %s, want %s", tt.country, got, tt.want)
		})
	}
}

func TestTaxCalculator_TaxFor_RoundsHalfUp(t *testing.T) {
	calc := NewDefaultTaxCalculator()

	// 33.33 * 21% = 6.9993 -> 7.00
	tax := calc.TaxFor(decimal.RequireFromString("33.33"), "ES")
	assert.Equal(t, "7.00", tax.StringFixed(2))

	// 10.01 * 21% = 2.1021 -> 2.10
	tax = calc.TaxFor(decimal.RequireFromString("10.01"), "ES")
	assert.Equal(t, "2.10", tax.StringFixed(2))

	// 12.50 * 22% = 2.75 exactly
	tax = calc.TaxFor(decimal.RequireFromString("12.50"), "IT")
	assert.Equal(t, "2.75", tax.StringFixed(2))
}

func TestTaxCalculator_Detail(t *testing.T) {
	calc := NewDefaultTaxCalculator()

	detail := calc.Detail(decimal.RequireFromString("100.00"), "DE")
	assert.Equal(t, "DE", detail.Country)
	assert.Equal(t, "19.00", detail.Tax.StringFixed(2))
	assert.Equal(t, "119.00", detail.Total.StringFixed(2))

	detail = calc.Detail(decimal.RequireFromString("100.00"), "US")
	assert.Equal(t, "0.00", detail.Tax.StringFixed(2))
	assert.Equal(t, "100.00", detail.Total.StringFixed(2))
}

func TestTaxCalculator_Detail_TotalIsBasePlusTax(t *testing.T) {
	calc := NewDefaultTaxCalculator()

	bases := []string{"0.00", "0.01", "9.99", "19.99", "33.33", "49.99", "100.00", "1234.56"}
	countries := []string{"ES", "DE", "US", "CH", "JP", "ZZ", ""}

	for _, b := range bases {
		base := decimal.RequireFromString(b)
		for _, c := range countries {
			detail := calc.Detail(base, c)
			assert.True(t, detail.Total.Equal(detail.Base.Add(detail.Tax)),
				"total != base+tax for base=%s country=%q", b, c)
			assert.True(t, detail.Tax.Equal(calc.TaxFor(base, c)))
		}
	}
}

func TestTaxCalculator_IsConfigured(t *testing.T) {
	calc := NewDefaultTaxCalculator()

	// A known 0% country is configured; an unknown one is not, even though
	// both RateFor calls succeed.
	assert.True(t, calc.IsConfigured("US"))
	assert.True(t, calc.IsConfigured("hk"))
	assert.False(t, calc.IsConfigured("ZZ"))
	assert.False(t, calc.IsConfigured(""))
}

func TestTaxCalculator_InjectedRates(t *testing.T) {
	calc := NewTaxCalculator(map[string]decimal.Decimal{
		"xx": decimal.RequireFromString("5.00"),
	}, decimal.RequireFromString("10.00"))

	assert.Equal(t, "5.00", calc.RateFor("XX").StringFixed(2))
	assert.Equal(t, "10.00", calc.RateFor("YY").StringFixed(2))
}
