// Package core holds the spending domain: entries, limits, money parsing
// and report rendering. Amounts are kept in integer cents so summation and
// display never go through floating point.
package core

import (
	"fmt"
	"strings"
)

// Money is a currency-agnostic amount in cents.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String formats the amount with two fractional digits, e.g. 15050 -> "150.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

// ParseAmount parses user-entered text into a positive Money value.
//
// Both "150.50" and "150,50" are accepted: a decimal comma is normalized to
// a dot before parsing. Anything beyond the second fractional digit is
// rounded half-up. Zero, negative, signed and non-numeric input all fail
// with ErrInvalidAmount so callers can re-prompt instead of aborting.
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || s == "." {
		return Money{}, ErrInvalidAmount
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if hasFrac && strings.Contains(fracPart, ".") {
		return Money{}, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	// Overflow guard: anything longer already exceeds int64 cents.
	if len(intPart) > 17 {
		return Money{}, ErrInvalidAmount
	}

	var whole int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return Money{}, ErrInvalidAmount
		}
		whole = whole*10 + int64(r-'0')
	}

	var cents int64
	for i, r := range fracPart {
		if r < '0' || r > '9' {
			return Money{}, ErrInvalidAmount
		}
		switch i {
		case 0:
			cents += int64(r-'0') * 10
		case 1:
			cents += int64(r - '0')
		case 2:
			if r >= '5' {
				cents++
			}
		}
	}

	m := Money{Cents: whole*100 + cents}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}
