package form

import (
	"fmt"
	"strings"

	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	"github.com/shopspring/decimal"
)

var channelIcons = map[pricing.Channel]string{
	pricing.ChannelOffline: "🏪",
	pricing.ChannelGrab:    "🛵",
	pricing.ChannelShopee:  "🛒",
}

// RenderQuote formats a quote as a chat message, one block per channel.
func RenderQuote(q pricing.Quote, s settings.Settings) string {
	var sb strings.Builder

	if s.IsDetailMode {
		sb.WriteString(fmt.Sprintf("💰 Giá vốn thực: %s\n", FormatCurrency(q.TotalCost)))
	}
	sb.WriteString(fmt.Sprintf("📦 Giá vốn / đơn vị bán: %s\n", FormatCurrency(q.UnitCost)))
	if q.UnitWarning {
		sb.WriteString("⚠️ Đơn vị sỉ và lẻ khác loại, quy đổi chỉ mang tính ước lượng\n")
	}

	if q.Empty {
		if s.Mode() == pricing.ModeTargetPrice {
			sb.WriteString("\nNhập giá vốn và giá bán mong muốn để tính.")
		} else {
			sb.WriteString("\nNhập giá vốn để tính.")
		}
		return sb.String()
	}

	switch s.Mode() {
	case pricing.ModeTargetPrice:
		sb.WriteString(fmt.Sprintf("🎯 Giá bán mong muốn: %s\n", FormatCurrency(decimal.NewFromFloat(s.TargetPrice))))
	default:
		sb.WriteString(fmt.Sprintf("🎯 Lãi mong muốn: %s\n", FormatPercent(decimal.NewFromFloat(s.ProfitRate))))
	}

	for _, ch := range pricing.Channels() {
		r, ok := q.Results[ch]
		if !ok {
			continue
		}
		sb.WriteString("\n")
		renderChannel(&sb, r)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderChannel(sb *strings.Builder, r pricing.ChannelResult) {
	sb.WriteString(fmt.Sprintf("%s %s\n", channelIcons[r.Channel], r.Spec.Title))

	if r.Infeasible {
		sb.WriteString(fmt.Sprintf("⚠️ Tổng phí vượt 100%%! Giảm QC xuống dưới %s%%\n", r.MaxAdFeePercent.StringFixed(1)))
		return
	}

	sb.WriteString(fmt.Sprintf("Giá bán: %s\n", FormatCurrency(r.SellingPrice)))
	sb.WriteString(fmt.Sprintf("Giá vốn: %s\n", FormatCurrency(r.RealCost)))
	sb.WriteString(fmt.Sprintf("Thuế: %s\n", FormatCurrency(r.Tax)))
	if r.Spec.PlatformFeeRate.IsPositive() {
		sb.WriteString(fmt.Sprintf("Phí sàn: %s\n", FormatCurrency(r.PlatformFeeAmount)))
	}
	sb.WriteString(fmt.Sprintf("Phí QC: %s\n", FormatCurrency(r.AdFeeAmount)))
	sb.WriteString(fmt.Sprintf("Tổng chi: %s\n", FormatCurrency(r.TotalDeductAmount)))
	sb.WriteString(fmt.Sprintf("Tổng %% phí: %s\n", FormatPercent(r.TotalDeductionPercent)))

	mark := "✅"
	if r.ActualProfit.IsNegative() {
		mark = "❌"
	}
	sb.WriteString(fmt.Sprintf("Lãi thực: %s %s (%s)\n", FormatCurrency(r.ActualProfit), mark, FormatPercent(r.ActualProfitRatePercent)))

	if r.ShowRoundedHint() {
		sb.WriteString(fmt.Sprintf("💡 Gợi ý làm tròn: %s\n", FormatCurrency(r.RoundedSuggestion)))
	}
	if r.ShowPsychHint() {
		sb.WriteString(fmt.Sprintf("✨ Giá đẹp: %s\n", FormatCurrency(r.PsychSuggestion.Decimal)))
	}
}
