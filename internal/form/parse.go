package form

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber reads a money amount typed the Vietnamese way, where dots
// and commas group thousands: "500.000đ" is 500000. Anything without
// digits is zero.
func ParseNumber(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseDecimal accepts either separator as the decimal point. The last
// separator wins and earlier ones are dropped, so "1.234,5" is 1234.5.
func ParseDecimal(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	last := strings.LastIndexAny(cleaned, ".,")
	if last >= 0 {
		intPart := stripSeparators(cleaned[:last])
		fracPart := stripSeparators(cleaned[last+1:])
		if intPart == "" {
			intPart = "0"
		}
		cleaned = intPart
		if fracPart != "" {
			cleaned += "." + fracPart
		}
	}

	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParsePercent reads "20,5" or "20.5%" as 20.5.
func ParsePercent(s string) decimal.Decimal {
	return ParseDecimal(s)
}

func stripSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}
