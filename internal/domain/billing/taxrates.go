package billing

import "github.com/shopspring/decimal"

// DefaultTaxRates returns the built-in country to VAT-rate table (percent).
// Codes are ISO 3166-1 alpha-2, uppercase.
func DefaultTaxRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		// Europe
		"ES": decimal.RequireFromString("21.00"),
		"DE": decimal.RequireFromString("19.00"),
		"FR": decimal.RequireFromString("20.00"),
		"IT": decimal.RequireFromString("22.00"),
		"PT": decimal.RequireFromString("23.00"),
		"UK": decimal.RequireFromString("20.00"),
		"NL": decimal.RequireFromString("21.00"),
		"BE": decimal.RequireFromString("21.00"),
		"AT": decimal.RequireFromString("20.00"),
		"CH": decimal.RequireFromString("7.70"),
		"SE": decimal.RequireFromString("25.00"),
		"NO": decimal.RequireFromString("25.00"),
		"DK": decimal.RequireFromString("25.00"),
		"FI": decimal.RequireFromString("24.00"),
		"PL": decimal.RequireFromString("23.00"),
		"IE": decimal.RequireFromString("23.00"),
		"GR": decimal.RequireFromString("24.00"),

		// Americas
		"US": decimal.RequireFromString("0.00"),
		"MX": decimal.RequireFromString("16.00"),
		"AR": decimal.RequireFromString("21.00"),
		"BR": decimal.RequireFromString("17.00"),
		"CL": decimal.RequireFromString("19.00"),
		"CO": decimal.RequireFromString("19.00"),
		"PE": decimal.RequireFromString("18.00"),
		"UY": decimal.RequireFromString("22.00"),
		"VE": decimal.RequireFromString("16.00"),
		"EC": decimal.RequireFromString("12.00"),
		"CA": decimal.RequireFromString("5.00"),

		// Asia
		"JP": decimal.RequireFromString("10.00"),
		"CN": decimal.RequireFromString("13.00"),
		"IN": decimal.RequireFromString("18.00"),
		"KR": decimal.RequireFromString("10.00"),
		"SG": decimal.RequireFromString("8.00"),
		"HK": decimal.RequireFromString("0.00"),

		// Oceania
		"AU": decimal.RequireFromString("10.00"),
		"NZ": decimal.RequireFromString("15.00"),
	}
}
