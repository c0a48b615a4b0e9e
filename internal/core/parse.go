// Package core defines the finance data model shared by the store and the
// aggregation functions, plus small parsing helpers for external input.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string into a currency amount. Both dot
// (12.34) and comma (12,34) separators are accepted. Unparsable or negative
// input yields 0; malformed numbers are never propagated as errors.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseDayOfMonth converts a string into a 1-31 day number. Out-of-range or
// unparsable input yields 1. Days are not validated against any calendar
// month length.
func ParseDayOfMonth(s string) int {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || d < 1 || d > 31 {
		return 1
	}
	return d
}
