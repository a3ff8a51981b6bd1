package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RealCost is the landed cost of a purchase: price plus shipping plus the
// loss and risk buffers, both taken as percentages of the purchase price.
// Negative inputs count as zero.
func RealCost(purchase, shipping, lossPercent, riskPercent decimal.Decimal) decimal.Decimal {
	purchase = nonNegative(purchase)
	shipping = nonNegative(shipping)
	loss := purchase.Mul(nonNegative(lossPercent)).Div(hundred)
	risk := purchase.Mul(nonNegative(riskPercent)).Div(hundred)

	return purchase.Add(shipping).Add(loss).Add(risk)
}
