package form

import (
	"fmt"
	"strings"

	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	"github.com/shopspring/decimal"
)

const defaultUnit = "kg"

// clearValue marks a field given as "key=" or "key=-": merging it removes
// the field from the draft.
const clearValue = "-"

// Form holds the raw text of every calculator input, exactly as typed.
// Empty fields mean "not given".
type Form struct {
	TotalCost     string
	Purchase      string
	Shipping      string
	Loss          string
	Risk          string
	WholesaleQty  string
	WholesaleUnit string
	RetailQty     string
	RetailUnit    string
	Packaging     string
	Profit        string
	Target        string
	Tax           string
	OfflineAd     string
	GrabAd        string
	ShopeeAd      string
	Style         string
	Mode          string
	Detail        string
}

type field func(*Form) *string

var fields = map[string]field{
	"cost":       func(f *Form) *string { return &f.TotalCost },
	"total":      func(f *Form) *string { return &f.TotalCost },
	"purchase":   func(f *Form) *string { return &f.Purchase },
	"buy":        func(f *Form) *string { return &f.Purchase },
	"ship":       func(f *Form) *string { return &f.Shipping },
	"shipping":   func(f *Form) *string { return &f.Shipping },
	"loss":       func(f *Form) *string { return &f.Loss },
	"risk":       func(f *Form) *string { return &f.Risk },
	"wqty":       func(f *Form) *string { return &f.WholesaleQty },
	"wunit":      func(f *Form) *string { return &f.WholesaleUnit },
	"rqty":       func(f *Form) *string { return &f.RetailQty },
	"runit":      func(f *Form) *string { return &f.RetailUnit },
	"pack":       func(f *Form) *string { return &f.Packaging },
	"packaging":  func(f *Form) *string { return &f.Packaging },
	"profit":     func(f *Form) *string { return &f.Profit },
	"target":     func(f *Form) *string { return &f.Target },
	"price":      func(f *Form) *string { return &f.Target },
	"tax":        func(f *Form) *string { return &f.Tax },
	"offline_ad": func(f *Form) *string { return &f.OfflineAd },
	"grab_ad":    func(f *Form) *string { return &f.GrabAd },
	"shopee_ad":  func(f *Form) *string { return &f.ShopeeAd },
	"style":      func(f *Form) *string { return &f.Style },
	"mode":       func(f *Form) *string { return &f.Mode },
	"detail":     func(f *Form) *string { return &f.Detail },
}

// ParseForm reads key=value pairs separated by spaces, newlines or ';'.
// A lone value without a key is taken as the total cost. An empty value
// clears the field. Unknown keys and malformed pairs come back as warnings.
func ParseForm(text string) (Form, []string) {
	var f Form
	var warnings []string

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})

	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			if f.TotalCost == "" && ParseNumber(tok).IsPositive() {
				f.TotalCost = tok
				continue
			}
			warnings = append(warnings, fmt.Sprintf("bỏ qua %q", tok))
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		get, known := fields[key]
		if !known {
			warnings = append(warnings, fmt.Sprintf("không rõ trường %q", key))
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			value = clearValue
		}
		*get(&f) = value
	}

	return f, warnings
}

// Merge returns f with every given field of next written over it. Cleared
// fields of next are emptied.
func (f Form) Merge(next Form) Form {
	out := f
	for _, get := range fields {
		switch v := *get(&next); v {
		case "":
		case clearValue:
			*get(&out) = ""
		default:
			*get(&out) = v
		}
	}
	return out
}

// Empty reports whether no field was given.
func (f Form) Empty() bool {
	return f == Form{}
}

// CostInput builds the cost side of a calculation. Loss and risk come from
// the settings, which already carry any override given in the form.
func (f Form) CostInput(s settings.Settings) pricing.CostInput {
	s = s.Normalize()
	return pricing.CostInput{
		DetailMode:  s.IsDetailMode,
		TotalCost:   ParseNumber(given(f.TotalCost)),
		Purchase:    ParseNumber(given(f.Purchase)),
		Shipping:    ParseNumber(given(f.Shipping)),
		LossPercent: decimal.NewFromFloat(s.LossRate),
		RiskPercent: decimal.NewFromFloat(s.RiskRate),
		Lot: pricing.Lot{
			WholesaleQty:  ParseNumber(given(f.WholesaleQty)),
			WholesaleUnit: unitOrDefault(given(f.WholesaleUnit)),
			RetailQty:     ParseNumber(given(f.RetailQty)),
			RetailUnit:    unitOrDefault(given(f.RetailUnit)),
			PackagingCost: ParseNumber(given(f.Packaging)),
		},
	}
}

// Overrides collects the settings fields present in the form.
func (f Form) Overrides() settings.Patch {
	var p settings.Patch

	p.LossRate = percentField(f.Loss)
	p.RiskRate = percentField(f.Risk)
	p.ProfitRate = percentField(f.Profit)
	p.TaxRate = percentField(f.Tax)
	p.OfflineAdFee = percentField(f.OfflineAd)
	p.GrabAdFee = percentField(f.GrabAd)
	p.ShopeeAdFee = percentField(f.ShopeeAd)

	if given(f.Target) != "" {
		v, _ := ParseNumber(f.Target).Float64()
		p.TargetPrice = &v
	}
	if given(f.Style) != "" {
		if style, ok := pricing.ParseStyle(f.Style); ok {
			v := string(style)
			p.PriceStyle = &v
		}
	}
	if given(f.Mode) != "" {
		if mode, ok := pricing.ParseMode(f.Mode); ok {
			v := string(mode)
			p.PricingMode = &v
		}
	}
	if given(f.Detail) != "" {
		if v, ok := ParseSwitch(f.Detail); ok {
			p.IsDetailMode = &v
		}
	}

	return p
}

// ParseSwitch reads on/off style flags.
func ParseSwitch(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "1", "true", "yes", "bật":
		return true, true
	case "off", "0", "false", "no", "tắt":
		return false, true
	}
	return false, false
}

// given maps a cleared field to "".
func given(s string) string {
	if s == clearValue {
		return ""
	}
	return s
}

func percentField(s string) *float64 {
	if given(s) == "" {
		return nil
	}
	v, _ := ParsePercent(s).Float64()
	return &v
}

func unitOrDefault(u string) string {
	if strings.TrimSpace(u) == "" {
		return defaultUnit
	}
	return u
}
