package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// cleanNumeric strips thousands separators, currency markers and whitespace
// from user-entered numeric text.
func cleanNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == '₹':
			continue
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount converts user-entered monetary text into a decimal.
// Empty or malformed input coerces to zero rather than erroring; numeric
// fields are lenient by policy so a half-filled form never blocks a save.
func ParseAmount(input string) decimal.Decimal {
	s := cleanNumeric(input)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeRate converts user-entered percentage text ("18", "18%", "0.18")
// into a fractional rate. A bare value >= 1 is read as a percentage and
// divided by 100; a value < 1 is taken as already fractional. Known
// limitation: "0.5" therefore means 50%, not 0.5% — callers wanting half a
// percent must write "0.005".
func NormalizeRate(input string) decimal.Decimal {
	s := strings.ReplaceAll(cleanNumeric(input), "%", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() {
		return decimal.Zero
	}
	if d.GreaterThanOrEqual(one) {
		return d.Div(hundred)
	}
	return d
}

// Round2 rounds to 2 decimal places, half away from zero. All derived
// financial fields pass through here; intermediate results are rounded
// independently (gross and gstAmount each, then their sum) so recomputation
// is reproducible.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
