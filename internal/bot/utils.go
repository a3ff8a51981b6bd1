package bot

import (
	"fmt"
	"strings"

	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"
)

var styleNames = map[pricing.PriceStyle]string{
	pricing.StyleNone:    "không",
	pricing.StyleEnds500: "đuôi 500",
	pricing.StyleEnds900: "đuôi 900",
}

func describeSettings(s settings.Settings) string {
	var sb strings.Builder

	sb.WriteString("⚙️ Cài đặt\n")
	if s.Mode() == pricing.ModeTargetPrice {
		sb.WriteString(fmt.Sprintf("Chế độ: theo giá bán (%gđ)\n", s.TargetPrice))
	} else {
		sb.WriteString(fmt.Sprintf("Chế độ: theo %% lãi (%g%%)\n", s.ProfitRate))
	}
	sb.WriteString(fmt.Sprintf("Nhập chi tiết: %s\n", onOff(s.IsDetailMode)))
	sb.WriteString(fmt.Sprintf("Hao hụt: %g%% · Rủi ro: %g%%\n", s.LossRate, s.RiskRate))
	sb.WriteString(fmt.Sprintf("Thuế: %g%%\n", s.TaxRate))
	sb.WriteString(fmt.Sprintf("QC Offline: %g%% · Grab: %g%% · Shopee: %g%%\n",
		s.OfflineAdFee, s.GrabAdFee, s.ShopeeAdFee))
	sb.WriteString(fmt.Sprintf("Giá đẹp: %s", styleNames[s.Style()]))

	return sb.String()
}

func withWarnings(text string, warnings []string) string {
	if len(warnings) == 0 {
		return text
	}
	return text + "\n\n⚠️ " + strings.Join(warnings, "\n⚠️ ")
}

func onOff(v bool) string {
	if v {
		return "bật"
	}
	return "tắt"
}
