package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PercentTolerance is the absolute slack allowed when comparing a share
// total against its target. It absorbs rounding from repeated edits.
var PercentTolerance = decimal.NewFromFloat(0.5)

// FullBudget is the share total a campaign's phases must reach.
var FullBudget = decimal.NewFromInt(100)

// IsValidPercentInput reports whether raw may be held as a partially typed
// percentage: empty, digits, and at most one decimal separator ('.' or ',').
func IsValidPercentInput(raw string) bool {
	separators := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == ',':
			separators++
			if separators > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ParsePercent converts raw to a decimal. Empty or invalid input is zero.
func ParsePercent(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" || !IsValidPercentInput(raw) {
		return decimal.Zero
	}
	s := strings.Replace(raw, ",", ".", 1)
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizePercentOnBlur renders raw in canonical display form when the
// field loses focus: "12." becomes "12", "007,50" becomes "7.5". The parsed
// value is unchanged. Blank or invalid input normalizes to "", as does a
// lone separator, which holds no digit to keep.
func NormalizePercentOnBlur(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !IsValidPercentInput(raw) {
		return ""
	}
	if strings.Trim(raw, ".,") == "" {
		return ""
	}
	return ParsePercent(raw).String()
}

// PercentTotalsMatch reports whether total is within PercentTolerance of want.
func PercentTotalsMatch(total, want decimal.Decimal) bool {
	return total.Sub(want).Abs().LessThanOrEqual(PercentTolerance)
}

// SumPercents adds the parsed value of each raw share.
func SumPercents(raws ...string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range raws {
		total = total.Add(ParsePercent(r))
	}
	return total
}
