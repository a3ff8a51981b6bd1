package bot

import (
	"fmt"

	"channel-pricer/internal/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackPreset = "preset"
	callbackStyle  = "style"
)

func createPresetKeyboard(presets []settings.Preset) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range presets {
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s (lãi %g%%)", p.Name, p.ProfitRate),
			fmt.Sprintf("%s:%s", callbackPreset, p.Key),
		)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func createStyleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Không", callbackStyle+":none"),
			tgbotapi.NewInlineKeyboardButtonData("…500", callbackStyle+":500"),
			tgbotapi.NewInlineKeyboardButtonData("…900", callbackStyle+":900"),
		),
	)
}
