package settings

import (
	"fmt"
	"sort"
	"strings"

	"channel-pricer/internal/pricing"
)

// Preset is a named bundle of loss, risk and profit percentages for a
// product category.
type Preset struct {
	Key        string  `json:"key" yaml:"key"`
	Name       string  `json:"name" yaml:"name"`
	LossRate   float64 `json:"lossRate" yaml:"lossRate"`
	RiskRate   float64 `json:"riskRate" yaml:"riskRate"`
	ProfitRate float64 `json:"profitRate" yaml:"profitRate"`
}

func (p Preset) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("preset key is required")
	}
	if p.LossRate < 0 || p.RiskRate < 0 || p.ProfitRate < 0 {
		return fmt.Errorf("preset %q: rates must not be negative", p.Key)
	}
	return nil
}

var builtinPresets = []Preset{
	{Key: "dryGoods", Name: "Hàng khô", LossRate: 2, RiskRate: 1, ProfitRate: 25},
	{Key: "freshFood", Name: "Đồ tươi", LossRate: 8, RiskRate: 4, ProfitRate: 20},
	{Key: "dairy", Name: "Sữa", LossRate: 4, RiskRate: 2, ProfitRate: 18},
	{Key: "frozen", Name: "Đông lạnh", LossRate: 5, RiskRate: 3, ProfitRate: 22},
}

// ApplyPreset overwrites loss, risk and profit and switches to profit mode.
func ApplyPreset(s Settings, p Preset) Settings {
	s.PricingMode = string(pricing.ModeProfitRate)
	s.LossRate = p.LossRate
	s.RiskRate = p.RiskRate
	s.ProfitRate = p.ProfitRate
	return s.Normalize()
}

// Catalog is the set of presets available to the merchant.
type Catalog struct {
	presets map[string]Preset
}

func NewCatalog() *Catalog {
	c := &Catalog{presets: make(map[string]Preset, len(builtinPresets))}
	for _, p := range builtinPresets {
		c.presets[strings.ToLower(p.Key)] = p
	}
	return c
}

// Merge adds or replaces presets by key. Invalid entries are skipped and
// returned as errors so the caller can log them.
func (c *Catalog) Merge(extra []Preset) []error {
	var errs []error
	for _, p := range extra {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if p.Name == "" {
			p.Name = p.Key
		}
		c.presets[strings.ToLower(p.Key)] = p
	}
	return errs
}

func (c *Catalog) Get(key string) (Preset, bool) {
	p, ok := c.presets[strings.ToLower(strings.TrimSpace(key))]
	return p, ok
}

// List returns the presets sorted by key.
func (c *Catalog) List() []Preset {
	out := make([]Preset, 0, len(c.presets))
	for _, p := range c.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
