package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSolveProfitModeOffline(t *testing.T) {
	res := Solve(ChannelOffline, SolveInput{
		RealCost:   d("100000"),
		ProfitRate: d("0.20"),
		TaxRate:    d("0.015"),
		AdFeeRate:  decimal.Zero,
		Mode:       ModeProfitRate,
		Style:      StyleNone,
	})

	if res.Infeasible {
		t.Fatalf("offline should be feasible")
	}
	if !res.SellingPrice.Equal(d("122000")) {
		t.Errorf("selling price: got %s, want 122000", res.SellingPrice)
	}
	if !res.Tax.Equal(d("1830")) {
		t.Errorf("tax: got %s, want 1830", res.Tax)
	}
	if !res.PlatformFeeAmount.IsZero() {
		t.Errorf("offline platform fee should be zero, got %s", res.PlatformFeeAmount)
	}
	if !res.ActualProfit.Equal(d("20170")) {
		t.Errorf("profit: got %s, want 20170", res.ActualProfit)
	}
	if !res.ActualProfitRatePercent.Equal(d("20.17")) {
		t.Errorf("profit rate: got %s, want 20.17", res.ActualProfitRatePercent)
	}
	if !res.TotalDeductionPercent.Equal(d("1.5")) {
		t.Errorf("deduction percent: got %s, want 1.5", res.TotalDeductionPercent)
	}
	if res.ShowPsychHint() {
		t.Errorf("no psychological hint expected with style none")
	}
}

func TestSolveProfitModeGrab(t *testing.T) {
	res := Solve(ChannelGrab, SolveInput{
		RealCost:   d("100000"),
		ProfitRate: d("0.20"),
		TaxRate:    d("0.015"),
		AdFeeRate:  d("0.10"),
		Mode:       ModeProfitRate,
	})

	if !res.SellingPrice.Equal(d("189000")) {
		t.Fatalf("selling price: got %s, want 189000", res.SellingPrice)
	}
	if !res.PlatformFeeAmount.Equal(d("47250")) {
		t.Errorf("platform fee: got %s, want 47250", res.PlatformFeeAmount)
	}
	if !res.AdFeeAmount.Equal(d("18900")) {
		t.Errorf("ad fee: got %s, want 18900", res.AdFeeAmount)
	}
	if !res.TotalDeductionPercent.Equal(d("36.5")) {
		t.Errorf("deduction percent: got %s, want 36.5", res.TotalDeductionPercent)
	}
}

func TestSolveInfeasible(t *testing.T) {
	res := Solve(ChannelShopee, SolveInput{
		RealCost:   d("100000"),
		ProfitRate: d("0.20"),
		TaxRate:    d("0.015"),
		AdFeeRate:  d("0.90"),
		Mode:       ModeProfitRate,
	})

	if !res.Infeasible {
		t.Fatalf("expected feasibility failure")
	}
	if !res.MaxAdFeePercent.Equal(d("83.5")) {
		t.Errorf("max ad fee: got %s, want 83.5", res.MaxAdFeePercent)
	}
	if !res.SellingPrice.IsZero() {
		t.Errorf("infeasible result must not carry a price, got %s", res.SellingPrice)
	}
}

func TestSolveBoundaryIsInfeasible(t *testing.T) {
	// 0.015 + 0.25 + 0.735 == 1
	res := Solve(ChannelGrab, SolveInput{
		RealCost:  d("50000"),
		TaxRate:   d("0.015"),
		AdFeeRate: d("0.735"),
		Mode:      ModeProfitRate,
	})
	if !res.Infeasible {
		t.Fatalf("deduction of exactly 100%% must be infeasible")
	}
	if !res.MaxAdFeePercent.Equal(d("73.5")) {
		t.Errorf("max ad fee: got %s, want 73.5", res.MaxAdFeePercent)
	}

	res = Solve(ChannelGrab, SolveInput{
		RealCost:  d("50000"),
		TaxRate:   d("0.015"),
		AdFeeRate: d("0.734"),
		Mode:      ModeProfitRate,
	})
	if res.Infeasible {
		t.Fatalf("deduction just under 100%% must be feasible")
	}
}

func TestSolveTargetPriceMode(t *testing.T) {
	res := Solve(ChannelGrab, SolveInput{
		RealCost:    d("100000"),
		TargetPrice: d("150250"),
		TaxRate:     d("0.015"),
		AdFeeRate:   d("0.10"),
		Mode:        ModeTargetPrice,
		Style:       StyleEnds900,
	})

	if !res.SellingPrice.Equal(d("150250")) {
		t.Fatalf("target price must be kept, got %s", res.SellingPrice)
	}
	if !res.RoundedSuggestion.Equal(d("150500")) {
		t.Errorf("rounded suggestion: got %s, want 150500", res.RoundedSuggestion)
	}
	if !res.ShowRoundedHint() {
		t.Errorf("rounded hint should show when it differs from the target")
	}
	// psychological base is the rounded suggestion, not the target
	if !res.PsychSuggestion.Valid || !res.PsychSuggestion.Decimal.Equal(d("150900")) {
		t.Errorf("psych suggestion: got %+v, want 150900", res.PsychSuggestion)
	}
}

func TestSolveTargetPricePsychUsesRoundedSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		target  string
		style   PriceStyle
		want    string
	}{
		// from the target itself these would be 150500 and 150900
		{"offline ends500", ChannelOffline, "150300", StyleEnds500, "151500"},
		{"grab ends900", ChannelGrab, "150850", StyleEnds900, "151900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Solve(tt.channel, SolveInput{
				RealCost:    d("100000"),
				TargetPrice: d(tt.target),
				TaxRate:     d("0.015"),
				AdFeeRate:   decimal.Zero,
				Mode:        ModeTargetPrice,
				Style:       tt.style,
			})
			if !res.PsychSuggestion.Valid || !res.PsychSuggestion.Decimal.Equal(d(tt.want)) {
				t.Errorf("psych suggestion: got %+v, want %s", res.PsychSuggestion, tt.want)
			}
		})
	}
}

func TestSolveTargetPriceBelowCost(t *testing.T) {
	res := Solve(ChannelOffline, SolveInput{
		RealCost:    d("100000"),
		TargetPrice: d("90000"),
		TaxRate:     d("0.015"),
		Mode:        ModeTargetPrice,
	})

	if res.Infeasible {
		t.Fatalf("a losing target price is not a feasibility failure")
	}
	if !res.ActualProfit.IsNegative() {
		t.Errorf("expected negative profit, got %s", res.ActualProfit)
	}
	if res.ShowRoundedHint() {
		t.Errorf("90000 is already a multiple of 1000, no hint expected")
	}
}

func TestSolvePsychInProfitModeUsesSellingPrice(t *testing.T) {
	res := Solve(ChannelOffline, SolveInput{
		RealCost:   d("100000"),
		ProfitRate: d("0.20"),
		TaxRate:    d("0.015"),
		Mode:       ModeProfitRate,
		Style:      StyleEnds500,
	})
	if !res.PsychSuggestion.Valid || !res.PsychSuggestion.Decimal.Equal(d("122500")) {
		t.Fatalf("psych suggestion: got %+v, want 122500", res.PsychSuggestion)
	}
	if res.ShowRoundedHint() {
		t.Errorf("rounded hint is only for price mode")
	}
}

func TestSolveZeroCost(t *testing.T) {
	res := Solve(ChannelOffline, SolveInput{
		RealCost:    decimal.Zero,
		TargetPrice: d("10000"),
		Mode:        ModeTargetPrice,
	})
	if !res.ActualProfitRatePercent.IsZero() {
		t.Errorf("profit rate with zero cost must be 0, got %s", res.ActualProfitRatePercent)
	}
}

func TestSolveUnknownChannel(t *testing.T) {
	res := Solve(Channel("lazada"), SolveInput{RealCost: d("1000")})
	if !res.Infeasible {
		t.Fatalf("unknown channel should not produce a price")
	}
}

func TestSolveProperties(t *testing.T) {
	costs := []string{"1", "999", "12345.67", "100000", "2500000"}
	profits := []string{"0", "0.05", "0.2", "1.5"}
	ads := []string{"0", "0.05", "0.1", "0.3"}

	for _, ch := range Channels() {
		spec, _ := SpecFor(ch)
		for _, c := range costs {
			for _, p := range profits {
				for _, a := range ads {
					res := Solve(ch, SolveInput{
						RealCost:   d(c),
						ProfitRate: d(p),
						TaxRate:    d("0.015"),
						AdFeeRate:  d(a),
						Mode:       ModeProfitRate,
						Style:      StyleEnds900,
					})
					if res.Infeasible {
						t.Fatalf("%s cost=%s profit=%s ad=%s: unexpected infeasible", ch, c, p, a)
					}
					if !res.SellingPrice.Mod(spec.RoundingStep).IsZero() {
						t.Errorf("%s: price %s is not a multiple of %s", ch, res.SellingPrice, spec.RoundingStep)
					}
					want := res.SellingPrice.Sub(res.RealCost).Sub(res.Tax).Sub(res.PlatformFeeAmount).Sub(res.AdFeeAmount)
					if !res.ActualProfit.Equal(want) {
						t.Errorf("%s: profit %s != %s", ch, res.ActualProfit, want)
					}
					// rounding up keeps at least the desired margin
					desired := d(c).Mul(d(p))
					if res.ActualProfit.LessThan(desired) {
						t.Errorf("%s: profit %s below desired %s", ch, res.ActualProfit, desired)
					}
					if res.PsychSuggestion.Decimal.LessThan(res.SellingPrice) {
						t.Errorf("%s: psych %s below price %s", ch, res.PsychSuggestion.Decimal, res.SellingPrice)
					}
				}
			}
		}
	}
}
