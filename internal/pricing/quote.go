package pricing

import "github.com/shopspring/decimal"

// Config carries the rate and style settings of one calculation pass.
// Rates are fractions.
type Config struct {
	TaxRate     decimal.Decimal
	AdFeeRates  map[Channel]decimal.Decimal
	Mode        Mode
	ProfitRate  decimal.Decimal
	TargetPrice decimal.Decimal
	Style       PriceStyle
}

// CostInput is the cost side of the form. In detail mode the total cost is
// derived from purchase, shipping, loss and risk; otherwise TotalCost is
// used as entered.
type CostInput struct {
	DetailMode  bool
	TotalCost   decimal.Decimal
	Purchase    decimal.Decimal
	Shipping    decimal.Decimal
	LossPercent decimal.Decimal
	RiskPercent decimal.Decimal
	Lot         Lot
}

type Quote struct {
	TotalCost decimal.Decimal
	UnitCost  decimal.Decimal
	// UnitWarning asks the caller to flag the unit conversion as approximate.
	UnitWarning bool
	// Empty means there was nothing to price yet (no cost, or no target in
	// price mode) and Results is nil.
	Empty   bool
	Results map[Channel]ChannelResult
}

// Calculate runs a full pass over every channel. It is pure: the same
// inputs always give the same quote.
func Calculate(cost CostInput, cfg Config) Quote {
	total := cost.TotalCost
	if cost.DetailMode {
		total = RealCost(cost.Purchase, cost.Shipping, cost.LossPercent, cost.RiskPercent)
	}
	total = nonNegative(total)

	conv := ConvertUnitCost(total, cost.Lot)
	q := Quote{
		TotalCost:   total,
		UnitCost:    conv.CostPerRetailUnit,
		UnitWarning: !conv.Compatible && total.IsPositive(),
	}

	if !q.UnitCost.IsPositive() || (cfg.Mode == ModeTargetPrice && !cfg.TargetPrice.IsPositive()) {
		q.Empty = true
		return q
	}

	q.Results = make(map[Channel]ChannelResult, len(channelSpecs))
	for _, ch := range Channels() {
		q.Results[ch] = Solve(ch, SolveInput{
			RealCost:    q.UnitCost,
			ProfitRate:  cfg.ProfitRate,
			TargetPrice: cfg.TargetPrice,
			TaxRate:     cfg.TaxRate,
			AdFeeRate:   cfg.AdFeeRates[ch],
			Mode:        cfg.Mode,
			Style:       cfg.Style,
		})
	}
	return q
}
