// Package core holds the domain types shared by every component: calendar
// dates, monetary amounts, the expense/budget/recurring entities and the
// error taxonomy. It has no dependencies on storage or transport.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency-agnostic amount in integer cents. Arithmetic on
// cents is exact; convert to float only at the presentation edge.
type Money struct {
	Cents int64
}

// Validate returns an error unless the amount is strictly positive.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return Validationf("amount must be a positive number")
	}
	return nil
}

// Float returns the amount as a float64 for display and JSON encoding.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float())
}

// MoneyFromFloat converts a decimal amount to cents with half-up
// rounding. Negative, zero, NaN and infinite values are rejected.
func MoneyFromFloat(v float64) (Money, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Money{}, Validationf("amount must be a positive number")
	}
	cents := int64(math.Round(v * 100))
	if cents <= 0 {
		return Money{}, Validationf("amount must be a positive number")
	}
	return Money{Cents: cents}, nil
}

// ParseMoney converts a decimal string to cents. It accepts both dot
// (12.34) and comma (12,34) separators and applies half-up rounding on
// the third decimal digit. Only positive amounts are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, Validationf("amount must be a positive number")
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, Validationf("amount must be a positive number")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, Validationf("invalid amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, Validationf("invalid amount %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, Validationf("invalid amount %q", s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, Validationf("invalid amount %q", s)
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, Validationf("amount must be a positive number")
	}
	return Money{Cents: cents}, nil
}
