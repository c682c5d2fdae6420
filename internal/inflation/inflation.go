// Package inflation adjusts historical currency amounts to a present-day
// equivalent using an embedded CPI table.
package inflation

import "fmt"

// Adjust converts an amount denominated in year to its present-day
// equivalent, per the latest entry in the embedded CPI table. ok is false
// if year has no table entry (too old, too new, or between entries not
// covered): callers should leave the original text untouched rather than
// guess.
func Adjust(amount float64, year int) (adjusted float64, ok bool) {
	base, found := cpiTable[year]
	if !found || base <= 0 {
		return 0, false
	}
	latest := cpiTable[latestYear]
	return amount * (latest / base), true
}

// FormatEquivalent renders Adjust's result as the inflation-adjuster pass
// appends it alongside the original amount: 100 in 1980 gives "$392 in
// 2025", which the pass writes as "$100 (1980; $392 in 2025)".
func FormatEquivalent(amount float64, year int) (string, bool) {
	adjusted, ok := Adjust(amount, year)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("$%.0f in %d", adjusted, latestYear), true
}

// HasYear reports whether year has a table entry, for callers that want to
// skip formatting work for years Adjust would reject.
func HasYear(year int) bool {
	_, ok := cpiTable[year]
	return ok
}
