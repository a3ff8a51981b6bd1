package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeProfitRate  Mode = "profit"
	ModeTargetPrice Mode = "price"
)

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profit", "profitrate", "byprofitrate":
		return ModeProfitRate, true
	case "price", "target", "targetprice", "bytargetprice":
		return ModeTargetPrice, true
	}
	return ModeProfitRate, false
}

// SolveInput is everything one channel needs besides its own spec.
// Rates are fractions (0.015 is 1.5%).
type SolveInput struct {
	RealCost    decimal.Decimal
	ProfitRate  decimal.Decimal
	TargetPrice decimal.Decimal
	TaxRate     decimal.Decimal
	AdFeeRate   decimal.Decimal
	Mode        Mode
	Style       PriceStyle
}

type ChannelResult struct {
	Channel Channel
	Spec    ChannelSpec
	Mode    Mode

	// Infeasible is set when tax, platform and ad fees reach 100% of the
	// price. Only MaxAdFeePercent is meaningful then.
	Infeasible      bool
	MaxAdFeePercent decimal.Decimal

	SellingPrice            decimal.Decimal
	RealCost                decimal.Decimal
	Tax                     decimal.Decimal
	PlatformFeeAmount       decimal.Decimal
	AdFeeAmount             decimal.Decimal
	TotalDeductAmount       decimal.Decimal
	ActualProfit            decimal.Decimal
	TotalDeductionPercent   decimal.Decimal
	ActualProfitRatePercent decimal.Decimal
	RoundedSuggestion       decimal.Decimal
	PsychSuggestion         decimal.NullDecimal
}

// ShowRoundedHint reports whether the step-rounded price should be offered
// next to a merchant-chosen target price.
func (r ChannelResult) ShowRoundedHint() bool {
	return !r.Infeasible && r.Mode == ModeTargetPrice && !r.RoundedSuggestion.Equal(r.SellingPrice)
}

func (r ChannelResult) ShowPsychHint() bool {
	return !r.Infeasible && r.PsychSuggestion.Valid
}

// Solve back-solves the selling price of one channel.
//
// In profit mode the price P must satisfy P - cost - P*(tax+platform+ad) =
// cost*profitRate, so P = cost*(1+profitRate) / (1 - deductionRate), rounded
// up to the channel step. In price mode the target is taken as is. All fee
// amounts are computed from the final price.
func Solve(channel Channel, in SolveInput) ChannelResult {
	spec, ok := SpecFor(channel)
	if !ok {
		return ChannelResult{Channel: channel, Mode: in.Mode, Infeasible: true}
	}

	result := ChannelResult{Channel: channel, Spec: spec, Mode: in.Mode}

	deductionRate := in.TaxRate.Add(spec.PlatformFeeRate).Add(in.AdFeeRate)
	if deductionRate.GreaterThanOrEqual(one) {
		result.Infeasible = true
		result.MaxAdFeePercent = one.Sub(in.TaxRate).Sub(spec.PlatformFeeRate).Mul(hundred).Round(1)
		return result
	}

	var rawPrice, sellingPrice decimal.Decimal
	switch in.Mode {
	case ModeTargetPrice:
		rawPrice = in.TargetPrice
		sellingPrice = in.TargetPrice
	default:
		desiredProfit := in.RealCost.Mul(in.ProfitRate)
		rawPrice = in.RealCost.Add(desiredProfit).Div(one.Sub(deductionRate))
		sellingPrice = RoundUp(rawPrice, spec.RoundingStep)
	}

	result.SellingPrice = sellingPrice
	result.RealCost = in.RealCost
	result.Tax = sellingPrice.Mul(in.TaxRate)
	result.PlatformFeeAmount = sellingPrice.Mul(spec.PlatformFeeRate)
	result.AdFeeAmount = sellingPrice.Mul(in.AdFeeRate)
	result.TotalDeductAmount = in.RealCost.Add(result.Tax).Add(result.PlatformFeeAmount).Add(result.AdFeeAmount)
	result.ActualProfit = sellingPrice.Sub(result.TotalDeductAmount)
	result.TotalDeductionPercent = deductionRate.Mul(hundred)
	if in.RealCost.IsPositive() {
		result.ActualProfitRatePercent = result.ActualProfit.Div(in.RealCost).Mul(hundred)
	}

	result.RoundedSuggestion = RoundUp(rawPrice, spec.RoundingStep)

	// The committed price is the base in profit mode; in price mode the
	// merchant's target is left alone and the rounded hint is used instead.
	base := sellingPrice
	if in.Mode == ModeTargetPrice {
		base = result.RoundedSuggestion
	}
	if psych, ok := PsychPrice(base, in.Style); ok {
		result.PsychSuggestion = decimal.NullDecimal{Decimal: psych, Valid: true}
	}

	return result
}
