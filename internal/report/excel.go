package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	quoteSheet    = "Quote"
	settingsSheet = "Settings"
)

type row struct {
	label string
	value func(pricing.ChannelResult) interface{}
}

func amount(d decimal.Decimal) interface{} {
	rounded := d.Round(0)
	if !rounded.BigInt().IsInt64() {
		return rounded.String()
	}
	return rounded.IntPart()
}

func percent(d decimal.Decimal) interface{} {
	return d.Round(2).InexactFloat64()
}

var rows = []row{
	{"Giá bán", func(r pricing.ChannelResult) interface{} { return amount(r.SellingPrice) }},
	{"Giá vốn", func(r pricing.ChannelResult) interface{} { return amount(r.RealCost) }},
	{"Thuế", func(r pricing.ChannelResult) interface{} { return amount(r.Tax) }},
	{"Phí sàn", func(r pricing.ChannelResult) interface{} { return amount(r.PlatformFeeAmount) }},
	{"Phí QC", func(r pricing.ChannelResult) interface{} { return amount(r.AdFeeAmount) }},
	{"Tổng chi", func(r pricing.ChannelResult) interface{} { return amount(r.TotalDeductAmount) }},
	{"Lãi thực", func(r pricing.ChannelResult) interface{} { return amount(r.ActualProfit) }},
	{"Tổng % phí", func(r pricing.ChannelResult) interface{} { return percent(r.TotalDeductionPercent) }},
	{"% lãi / vốn", func(r pricing.ChannelResult) interface{} { return percent(r.ActualProfitRatePercent) }},
	{"Gợi ý làm tròn", func(r pricing.ChannelResult) interface{} { return amount(r.RoundedSuggestion) }},
	{"Giá đẹp", func(r pricing.ChannelResult) interface{} {
		if !r.PsychSuggestion.Valid {
			return ""
		}
		return amount(r.PsychSuggestion.Decimal)
	}},
}

// ExportQuote writes the quote to dir/quote_YYYYMMDD_HHMMSS.xlsx and
// returns the file path.
func ExportQuote(q pricing.Quote, s settings.Settings, dir string, now time.Time) (string, error) {
	const operation = "report.ExportQuote"

	if q.Empty {
		return "", fmt.Errorf("%s: nothing to export", operation)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return "", fmt.Errorf("%s: failed to create sheet: %w", operation, err)
	}

	f.SetCellValue(quoteSheet, "A1", "Kênh")
	channels := pricing.Channels()
	for col, ch := range channels {
		cell, _ := excelize.CoordinatesToCellName(col+2, 1)
		spec, _ := pricing.SpecFor(ch)
		f.SetCellValue(quoteSheet, cell, spec.Title)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(quoteSheet, cell, r.label)
	}

	for col, ch := range channels {
		res, ok := q.Results[ch]
		if !ok {
			continue
		}
		if res.Infeasible {
			cell, _ := excelize.CoordinatesToCellName(col+2, 2)
			f.SetCellValue(quoteSheet, cell,
				fmt.Sprintf("Tổng phí vượt 100%%! QC < %s%%", res.MaxAdFeePercent.StringFixed(1)))
			continue
		}
		for i, r := range rows {
			cell, _ := excelize.CoordinatesToCellName(col+2, i+2)
			f.SetCellValue(quoteSheet, cell, r.value(res))
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(channels)+1, 1)
	f.SetCellStyle(quoteSheet, "A1", lastHeader, style)
	f.SetColWidth(quoteSheet, "A", "A", 18)

	if err := writeSettings(f, q, s, now, style); err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}

	f.SetActiveSheet(0)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%s: failed to create reports directory: %w", operation, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("quote_%s.xlsx", now.Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%s: failed to save Excel file: %w", operation, err)
	}

	return path, nil
}

func writeSettings(f *excelize.File, q pricing.Quote, s settings.Settings, now time.Time, style int) error {
	if _, err := f.NewSheet(settingsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	data := [][]interface{}{
		{"Thời gian", now.Format("2006-01-02 15:04")},
		{"Giá vốn tổng", amount(q.TotalCost)},
		{"Giá vốn / đơn vị", amount(q.UnitCost)},
		{"Chế độ", s.PricingMode},
		{"Lãi mong muốn (%)", s.ProfitRate},
		{"Giá bán mong muốn", s.TargetPrice},
		{"Thuế (%)", s.TaxRate},
		{"QC Offline (%)", s.OfflineAdFee},
		{"QC Grab (%)", s.GrabAdFee},
		{"QC Shopee (%)", s.ShopeeAdFee},
		{"Hao hụt (%)", s.LossRate},
		{"Rủi ro (%)", s.RiskRate},
		{"Kiểu giá đẹp", s.PriceStyle},
	}

	for i, pair := range data {
		for col, value := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			f.SetCellValue(settingsSheet, cell, value)
		}
	}

	last, _ := excelize.CoordinatesToCellName(1, len(data))
	f.SetCellStyle(settingsSheet, "A1", last, style)
	f.SetColWidth(settingsSheet, "A", "A", 20)
	return nil
}
