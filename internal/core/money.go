// Package core holds the ledger data model and the summary and simulation
// engines. Everything in this package is pure computation: no I/O, no clocks,
// no hidden state.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string into a signed amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading sign, and currency noise such as "$" or thousands
// separators left over from spreadsheet exports. Returns ErrInvalidAmount for
// anything that does not reduce to a number.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	// "1.234,56" -> "1234.56"; "1,234.56" -> "1234.56"; "12,34" -> "12.34"
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if neg {
		v = -v
	}
	return v, nil
}

// Round2 rounds to two decimal places, half away from zero. All monetary
// outputs pass through here before presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
