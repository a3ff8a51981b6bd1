package form

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Vietnamese)

// FormatCurrency prints a whole-đồng amount with Vietnamese grouping,
// e.g. 122.000đ. Amounts beyond int64 are grouped from their decimal
// digits so they never wrap.
func FormatCurrency(v decimal.Decimal) string {
	rounded := v.Round(0)
	if rounded.IsZero() {
		return "0đ"
	}
	if n := rounded.BigInt(); !n.IsInt64() {
		return groupThousands(n.String()) + "đ"
	}
	return printer.Sprintf("%d", rounded.IntPart()) + "đ"
}

// FormatPercent prints a percentage with one decimal place, e.g. 20,5%.
func FormatPercent(v decimal.Decimal) string {
	if v.IsZero() {
		return "0%"
	}
	f, _ := v.Round(1).Float64()
	return printer.Sprintf("%.1f", f) + "%"
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var sb strings.Builder
	sb.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteByte('.')
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
