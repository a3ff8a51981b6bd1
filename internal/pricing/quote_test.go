package pricing

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func defaultConfig() Config {
	return Config{
		TaxRate: d("0.015"),
		AdFeeRates: map[Channel]decimal.Decimal{
			ChannelOffline: decimal.Zero,
			ChannelGrab:    d("0.10"),
			ChannelShopee:  d("0.10"),
		},
		Mode:       ModeProfitRate,
		ProfitRate: d("0.20"),
		Style:      StyleNone,
	}
}

func TestCalculateQuickMode(t *testing.T) {
	q := Calculate(CostInput{
		TotalCost: d("100000"),
		Lot:       Lot{WholesaleQty: d("1"), WholesaleUnit: "kg", RetailQty: d("1"), RetailUnit: "kg"},
	}, defaultConfig())

	if q.Empty {
		t.Fatalf("quote should not be empty")
	}
	if len(q.Results) != len(Channels()) {
		t.Fatalf("expected %d results, got %d", len(Channels()), len(q.Results))
	}
	if got := q.Results[ChannelOffline].SellingPrice; !got.Equal(d("122000")) {
		t.Errorf("offline price = %s, want 122000", got)
	}
	if got := q.Results[ChannelGrab].SellingPrice; !got.Equal(d("189000")) {
		t.Errorf("grab price = %s, want 189000", got)
	}
	// 120000 / (1 - 0.265) = 163265.3 -> 163500
	if got := q.Results[ChannelShopee].SellingPrice; !got.Equal(d("163500")) {
		t.Errorf("shopee price = %s, want 163500", got)
	}
}

func TestCalculateDetailMode(t *testing.T) {
	q := Calculate(CostInput{
		DetailMode:  true,
		TotalCost:   d("999999"), // ignored in detail mode
		Purchase:    d("500000"),
		Shipping:    d("20000"),
		LossPercent: d("2"),
		RiskPercent: d("1"),
		Lot:         Lot{WholesaleQty: d("50"), WholesaleUnit: "kg", RetailQty: d("1"), RetailUnit: "kg"},
	}, defaultConfig())

	if !q.TotalCost.Equal(d("535000")) {
		t.Fatalf("total cost = %s, want 535000", q.TotalCost)
	}
	if !q.UnitCost.Equal(d("10700")) {
		t.Fatalf("unit cost = %s, want 10700", q.UnitCost)
	}
}

func TestCalculateOneChannelFailsOthersCompute(t *testing.T) {
	cfg := defaultConfig()
	cfg.AdFeeRates[ChannelShopee] = d("0.90")

	q := Calculate(CostInput{TotalCost: d("100000")}, cfg)

	if !q.Results[ChannelShopee].Infeasible {
		t.Fatalf("shopee should be infeasible")
	}
	if !q.Results[ChannelShopee].MaxAdFeePercent.Equal(d("83.5")) {
		t.Errorf("max ad fee = %s, want 83.5", q.Results[ChannelShopee].MaxAdFeePercent)
	}
	if q.Results[ChannelOffline].Infeasible || q.Results[ChannelGrab].Infeasible {
		t.Errorf("other channels must still compute")
	}
}

func TestCalculateEmpty(t *testing.T) {
	q := Calculate(CostInput{}, defaultConfig())
	if !q.Empty || q.Results != nil {
		t.Errorf("zero cost should give an empty quote")
	}
	if q.UnitWarning {
		t.Errorf("no unit warning without a cost")
	}

	cfg := defaultConfig()
	cfg.Mode = ModeTargetPrice
	q = Calculate(CostInput{TotalCost: d("100000")}, cfg)
	if !q.Empty {
		t.Errorf("price mode without a target should give an empty quote")
	}
}

func TestCalculateUnitWarning(t *testing.T) {
	lot := Lot{WholesaleQty: d("10"), WholesaleUnit: "kg", RetailQty: d("1"), RetailUnit: "hộp"}

	q := Calculate(CostInput{TotalCost: d("100000"), Lot: lot}, defaultConfig())
	if !q.UnitWarning {
		t.Errorf("mass to count should warn")
	}

	q = Calculate(CostInput{Lot: lot}, defaultConfig())
	if q.UnitWarning {
		t.Errorf("warning is suppressed while there is no cost")
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	cfg := defaultConfig()
	cfg.Style = StyleEnds900
	in := CostInput{
		TotalCost: d("73456"),
		Lot:       Lot{WholesaleQty: d("3"), WholesaleUnit: "kg", RetailQty: d("500"), RetailUnit: "g"},
	}

	first := fmt.Sprintf("%+v", Calculate(in, cfg))
	for i := 0; i < 5; i++ {
		if again := fmt.Sprintf("%+v", Calculate(in, cfg)); again != first {
			t.Fatalf("recomputation differs:\n%s\n%s", first, again)
		}
	}
}
