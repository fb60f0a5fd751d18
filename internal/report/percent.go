package report

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of decimals shown in percentages.
const DefaultPrecision int32 = 2

// Percent formats a probability as a percentage rounded half away from zero,
// e.g. 0.38172 -> "38.17%".
func Percent(p float64, places int32) string {
	if places < 0 {
		places = 0
	}
	return decimal.NewFromFloat(p).Shift(2).StringFixed(places) + "%"
}
