package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PriceStyle string

const (
	StyleNone    PriceStyle = "none"
	StyleEnds500 PriceStyle = "ends500"
	StyleEnds900 PriceStyle = "ends900"
)

var (
	psychStep = decimal.NewFromInt(1000)
	tail500   = decimal.NewFromInt(500)
	tail900   = decimal.NewFromInt(900)
)

// ParseStyle accepts the canonical names plus the short forms used in chat
// ("500", "900", "ends5", "ends9").
func ParseStyle(s string) (PriceStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off", "":
		return StyleNone, true
	case "ends500", "500", "ends5":
		return StyleEnds500, true
	case "ends900", "900", "ends9":
		return StyleEnds900, true
	}
	return StyleNone, false
}

// RoundUp rounds value up to the next multiple of step. Rounding never goes
// down so the margin is kept.
func RoundUp(value, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return value
	}
	return value.Div(step).Ceil().Mul(step)
}

// PsychPrice suggests the first price at or above price whose thousands
// remainder equals the style's tail (500 or 900).
func PsychPrice(price decimal.Decimal, style PriceStyle) (decimal.Decimal, bool) {
	if !price.IsPositive() {
		return decimal.Zero, false
	}

	var tail decimal.Decimal
	switch style {
	case StyleEnds500:
		tail = tail500
	case StyleEnds900:
		tail = tail900
	default:
		return decimal.Zero, false
	}

	suggestion := price.Div(psychStep).Floor().Mul(psychStep).Add(tail)
	if suggestion.LessThan(price) {
		suggestion = suggestion.Add(psychStep)
	}
	return suggestion, true
}
