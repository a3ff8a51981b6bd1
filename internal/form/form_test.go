package form

import (
	"strings"
	"testing"

	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	"github.com/shopspring/decimal"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"500.000", 500000},
		{"500,000đ", 500000},
		{" 1 200 000 ", 1200000},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("ParseNumber(%q) = %s, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20,5", "20.5"},
		{"20.5%", "20.5"},
		{"1.234,5", "1234.5"},
		{"1,234.5", "1234.5"},
		{"15", "15"},
		{",5", "0.5"},
		{"7,", "7"},
		{"", "0"},
		{"x", "0"},
	}

	for _, tt := range tests {
		want := decimal.RequireFromString(tt.want)
		if got := ParsePercent(tt.in); !got.Equal(want) {
			t.Errorf("ParsePercent(%q) = %s, want %s", tt.in, got, want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := FormatCurrency(decimal.NewFromInt(122000)); got != "122.000đ" {
		t.Errorf("FormatCurrency = %q", got)
	}
	if got := FormatCurrency(decimal.RequireFromString("1829.6")); got != "1.830đ" {
		t.Errorf("FormatCurrency rounding = %q", got)
	}
	if got := FormatCurrency(decimal.RequireFromString("-0.2")); got != "0đ" {
		t.Errorf("FormatCurrency negative zero = %q", got)
	}
	if got := FormatPercent(decimal.RequireFromString("20.5")); got != "20,5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(decimal.Zero); got != "0%" {
		t.Errorf("FormatPercent zero = %q", got)
	}
}

func TestFormatCurrencyBeyondInt64(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"121827411167512691000", "121.827.411.167.512.691.000đ"},
		{"-99999999999999999999.6", "-100.000.000.000.000.000.000đ"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	f, _ := ParseForm("cost=99999999999999999999")
	s := settings.Defaults()
	q := pricing.Calculate(f.CostInput(s), s.PricingConfig())
	out := RenderQuote(q, s)
	if strings.Contains(out, "Giá bán: -") {
		t.Errorf("a huge cost must not render a negative price:\n%s", out)
	}
}

func TestParseForm(t *testing.T) {
	f, warnings := ParseForm("cost=500.000; wqty=50 wunit=kg\nrqty=1 runit=kg profit=25 foo=1")

	if f.TotalCost != "500.000" || f.WholesaleQty != "50" || f.RetailUnit != "kg" || f.Profit != "25" {
		t.Errorf("unexpected form %+v", f)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "foo") {
		t.Errorf("expected one warning about foo, got %v", warnings)
	}
}

func TestParseFormBareNumber(t *testing.T) {
	f, warnings := ParseForm("100.000")
	if f.TotalCost != "100.000" || len(warnings) != 0 {
		t.Errorf("unexpected form %+v warnings %v", f, warnings)
	}
}

func TestFormMerge(t *testing.T) {
	base, _ := ParseForm("cost=100000 profit=20")
	next, _ := ParseForm("profit=30")

	got := base.Merge(next)
	if got.TotalCost != "100000" || got.Profit != "30" {
		t.Errorf("unexpected merge %+v", got)
	}
}

func TestFormMergeClearsEmptyField(t *testing.T) {
	base, _ := ParseForm("cost=100000 pack=2.000 runit=g")
	next, warnings := ParseForm("pack= runit=-")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	got := base.Merge(next)
	if got.Packaging != "" || got.RetailUnit != "" || got.TotalCost != "100000" {
		t.Errorf("unexpected merge %+v", got)
	}

	in := got.CostInput(settings.Defaults())
	if !in.Lot.PackagingCost.IsZero() || in.Lot.RetailUnit != "kg" {
		t.Errorf("cleared fields should fall back to defaults, got %+v", in.Lot)
	}
	if !next.Overrides().Empty() {
		t.Error("clearing cost fields must not change settings")
	}
}

func TestFormCostInput(t *testing.T) {
	f, _ := ParseForm("purchase=100.000 ship=5.000 wqty=50 rqty=1 pack=2.000")
	s := settings.Defaults()
	s.IsDetailMode = true

	in := f.CostInput(s)
	if !in.DetailMode || !in.Purchase.Equal(decimal.NewFromInt(100000)) || !in.Shipping.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("unexpected cost input %+v", in)
	}
	if !in.LossPercent.Equal(decimal.NewFromInt(5)) || !in.RiskPercent.Equal(decimal.NewFromInt(3)) {
		t.Errorf("loss/risk should come from settings, got %s/%s", in.LossPercent, in.RiskPercent)
	}
	if in.Lot.WholesaleUnit != "kg" || in.Lot.RetailUnit != "kg" || !in.Lot.PackagingCost.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("unexpected lot %+v", in.Lot)
	}
}

func TestFormOverrides(t *testing.T) {
	f, _ := ParseForm("cost=1 profit=25,5 grab_ad=12 style=900 mode=price target=150.000 detail=on")
	p := f.Overrides()

	got := p.Apply(settings.Defaults())
	if got.ProfitRate != 25.5 || got.GrabAdFee != 12 || got.TargetPrice != 150000 {
		t.Errorf("unexpected numbers %+v", got)
	}
	if got.PriceStyle != string(pricing.StyleEnds900) || got.PricingMode != string(pricing.ModeTargetPrice) || !got.IsDetailMode {
		t.Errorf("unexpected enums %+v", got)
	}
	if p.LossRate != nil || p.TaxRate != nil {
		t.Error("absent fields must stay nil")
	}

	empty, _ := ParseForm("cost=100000")
	if !empty.Overrides().Empty() {
		t.Error("cost-only form must not change settings")
	}
}

func TestRenderQuote(t *testing.T) {
	s := settings.Defaults()
	s.ShopeeAdFee = 90

	f, _ := ParseForm("cost=100.000")
	q := pricing.Calculate(f.CostInput(s), s.PricingConfig())
	out := RenderQuote(q, s)

	for _, want := range []string{
		"Giá bán: 122.000đ",
		"Thuế: 1.830đ",
		"Giá bán: 189.000đ",
		"Tổng phí vượt 100%! Giảm QC xuống dưới 83.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered quote missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyQuote(t *testing.T) {
	s := settings.Defaults()
	out := RenderQuote(pricing.Calculate(Form{}.CostInput(s), s.PricingConfig()), s)
	if !strings.Contains(out, "Nhập giá vốn") {
		t.Errorf("expected prompt, got %q", out)
	}
}
