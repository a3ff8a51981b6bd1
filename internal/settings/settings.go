package settings

import (
	"channel-pricer/internal/pricing"

	"github.com/shopspring/decimal"
)

// Settings is the persisted configuration. Numbers are stored the way the
// merchant types them: percentages as 1.5 for 1.5%, amounts in đ.
type Settings struct {
	LossRate     float64 `json:"lossRate" yaml:"lossRate" db:"loss_rate"`
	RiskRate     float64 `json:"riskRate" yaml:"riskRate" db:"risk_rate"`
	ProfitRate   float64 `json:"profitRate" yaml:"profitRate" db:"profit_rate"`
	TargetPrice  float64 `json:"targetPrice" yaml:"targetPrice" db:"target_price"`
	TaxRate      float64 `json:"taxRate" yaml:"taxRate" db:"tax_rate"`
	GrabAdFee    float64 `json:"grabAdFee" yaml:"grabAdFee" db:"grab_ad_fee"`
	ShopeeAdFee  float64 `json:"shopeeAdFee" yaml:"shopeeAdFee" db:"shopee_ad_fee"`
	OfflineAdFee float64 `json:"offlineAdFee" yaml:"offlineAdFee" db:"offline_ad_fee"`
	PriceStyle   string  `json:"priceStyle" yaml:"priceStyle" db:"price_style"`
	PricingMode  string  `json:"pricingMode" yaml:"pricingMode" db:"pricing_mode"`
	IsDetailMode bool    `json:"isDetailMode" yaml:"isDetailMode" db:"is_detail_mode"`
}

const DefaultTaxRatePercent = 1.5

func Defaults() Settings {
	return Settings{
		LossRate:     5,
		RiskRate:     3,
		ProfitRate:   20,
		TargetPrice:  0,
		TaxRate:      DefaultTaxRatePercent,
		GrabAdFee:    10,
		ShopeeAdFee:  10,
		OfflineAdFee: 0,
		PriceStyle:   string(pricing.StyleNone),
		PricingMode:  string(pricing.ModeProfitRate),
		IsDetailMode: false,
	}
}

// Normalize clamps negative numbers to zero and replaces unknown enum
// values with their defaults.
func (s Settings) Normalize() Settings {
	def := Defaults()
	for _, f := range []*float64{
		&s.LossRate, &s.RiskRate, &s.ProfitRate, &s.TargetPrice,
		&s.TaxRate, &s.GrabAdFee, &s.ShopeeAdFee, &s.OfflineAdFee,
	} {
		if *f < 0 {
			*f = 0
		}
	}
	if style, ok := pricing.ParseStyle(s.PriceStyle); ok {
		s.PriceStyle = string(style)
	} else {
		s.PriceStyle = def.PriceStyle
	}
	if mode, ok := pricing.ParseMode(s.PricingMode); ok {
		s.PricingMode = string(mode)
	} else {
		s.PricingMode = def.PricingMode
	}
	return s
}

func (s Settings) Mode() pricing.Mode {
	mode, _ := pricing.ParseMode(s.PricingMode)
	return mode
}

func (s Settings) Style() pricing.PriceStyle {
	style, _ := pricing.ParseStyle(s.PriceStyle)
	return style
}

// AdFeePercent returns the stored ad fee of a channel.
func (s Settings) AdFeePercent(c pricing.Channel) float64 {
	switch c {
	case pricing.ChannelGrab:
		return s.GrabAdFee
	case pricing.ChannelShopee:
		return s.ShopeeAdFee
	case pricing.ChannelOffline:
		return s.OfflineAdFee
	}
	return 0
}

// PricingConfig converts the stored percentages into the fractions the
// pricing engine works with.
func (s Settings) PricingConfig() pricing.Config {
	s = s.Normalize()

	ads := make(map[pricing.Channel]decimal.Decimal, len(pricing.Channels()))
	for _, ch := range pricing.Channels() {
		ads[ch] = percentToRate(s.AdFeePercent(ch))
	}

	return pricing.Config{
		TaxRate:     percentToRate(s.TaxRate),
		AdFeeRates:  ads,
		Mode:        s.Mode(),
		ProfitRate:  percentToRate(s.ProfitRate),
		TargetPrice: decimal.NewFromFloat(s.TargetPrice),
		Style:       s.Style(),
	}
}

func percentToRate(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(decimal.NewFromInt(100))
}
