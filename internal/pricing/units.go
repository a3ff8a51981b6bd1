package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Dimension string

const (
	DimensionMass   Dimension = "g"
	DimensionVolume Dimension = "ml"
	DimensionCount  Dimension = "unit"
)

// UnitMeta maps a unit onto its base dimension.
type UnitMeta struct {
	Base   Dimension
	Factor decimal.Decimal // how many base units one unit holds
}

var (
	thousand = decimal.NewFromInt(1000)
	one      = decimal.NewFromInt(1)
)

var unitTable = map[string]UnitMeta{
	"kg":     {Base: DimensionMass, Factor: thousand},
	"g":      {Base: DimensionMass, Factor: one},
	"l":      {Base: DimensionVolume, Factor: thousand},
	"lít":    {Base: DimensionVolume, Factor: thousand},
	"ml":     {Base: DimensionVolume, Factor: one},
	"piece":  {Base: DimensionCount, Factor: one},
	"cái":    {Base: DimensionCount, Factor: one},
	"box":    {Base: DimensionCount, Factor: one},
	"hộp":    {Base: DimensionCount, Factor: one},
	"carton": {Base: DimensionCount, Factor: one},
	"thùng":  {Base: DimensionCount, Factor: one},
	"pack":   {Base: DimensionCount, Factor: one},
	"gói":    {Base: DimensionCount, Factor: one},
}

// LookupUnit resolves a unit name. Unknown units become their own dimension
// with factor 1, so the same unknown unit on both sides still converts.
func LookupUnit(name string) (UnitMeta, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if meta, ok := unitTable[key]; ok {
		return meta, true
	}
	return UnitMeta{Base: Dimension(key), Factor: one}, false
}

// Lot describes a wholesale purchase and the retail portion sold from it.
type Lot struct {
	WholesaleQty  decimal.Decimal
	WholesaleUnit string
	RetailQty     decimal.Decimal
	RetailUnit    string
	PackagingCost decimal.Decimal
}

type Conversion struct {
	CostPerRetailUnit decimal.Decimal
	// Compatible is false when the units belong to different dimensions
	// and the naive quantity ratio was used instead.
	Compatible bool
}

// ConvertUnitCost spreads totalCost over the lot and returns the cost of
// one retail unit including packaging.
func ConvertUnitCost(totalCost decimal.Decimal, lot Lot) Conversion {
	wholesaleQty := positiveOr(lot.WholesaleQty, one)
	retailQty := positiveOr(lot.RetailQty, one)
	packaging := nonNegative(lot.PackagingCost)

	wholesale, _ := LookupUnit(lot.WholesaleUnit)
	retail, _ := LookupUnit(lot.RetailUnit)

	if wholesale.Base == retail.Base {
		perBase := totalCost.Div(wholesaleQty.Mul(wholesale.Factor))
		return Conversion{
			CostPerRetailUnit: perBase.Mul(retailQty.Mul(retail.Factor)).Add(packaging),
			Compatible:        true,
		}
	}

	return Conversion{
		CostPerRetailUnit: totalCost.Div(wholesaleQty).Mul(retailQty).Add(packaging),
		Compatible:        false,
	}
}

func positiveOr(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsPositive() {
		return v
	}
	return fallback
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
