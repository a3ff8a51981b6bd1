package settings

// Patch is a partial Settings record. Nil fields are left untouched when
// the patch is applied, which is how a stored record is merged over the
// defaults one field at a time.
type Patch struct {
	LossRate     *float64 `json:"lossRate,omitempty" yaml:"lossRate,omitempty"`
	RiskRate     *float64 `json:"riskRate,omitempty" yaml:"riskRate,omitempty"`
	ProfitRate   *float64 `json:"profitRate,omitempty" yaml:"profitRate,omitempty"`
	TargetPrice  *float64 `json:"targetPrice,omitempty" yaml:"targetPrice,omitempty"`
	TaxRate      *float64 `json:"taxRate,omitempty" yaml:"taxRate,omitempty"`
	GrabAdFee    *float64 `json:"grabAdFee,omitempty" yaml:"grabAdFee,omitempty"`
	ShopeeAdFee  *float64 `json:"shopeeAdFee,omitempty" yaml:"shopeeAdFee,omitempty"`
	OfflineAdFee *float64 `json:"offlineAdFee,omitempty" yaml:"offlineAdFee,omitempty"`
	PriceStyle   *string  `json:"priceStyle,omitempty" yaml:"priceStyle,omitempty"`
	PricingMode  *string  `json:"pricingMode,omitempty" yaml:"pricingMode,omitempty"`
	IsDetailMode *bool    `json:"isDetailMode,omitempty" yaml:"isDetailMode,omitempty"`
}

func (p Patch) Apply(base Settings) Settings {
	out := base

	setFloat(&out.LossRate, p.LossRate)
	setFloat(&out.RiskRate, p.RiskRate)
	setFloat(&out.ProfitRate, p.ProfitRate)
	setFloat(&out.TargetPrice, p.TargetPrice)
	setFloat(&out.TaxRate, p.TaxRate)
	setFloat(&out.GrabAdFee, p.GrabAdFee)
	setFloat(&out.ShopeeAdFee, p.ShopeeAdFee)
	setFloat(&out.OfflineAdFee, p.OfflineAdFee)

	if p.PriceStyle != nil {
		out.PriceStyle = *p.PriceStyle
	}
	if p.PricingMode != nil {
		out.PricingMode = *p.PricingMode
	}
	if p.IsDetailMode != nil {
		out.IsDetailMode = *p.IsDetailMode
	}

	return out.Normalize()
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// FromStored merges a decoded record over the defaults.
func FromStored(p Patch) Settings {
	return p.Apply(Defaults())
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
