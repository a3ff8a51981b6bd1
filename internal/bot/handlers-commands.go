package bot

import (
	"context"
	"strings"

	"channel-pricer/internal/form"
	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = `Định giá tạp hoá đa kênh 🧮

Gửi giá vốn để tính ngay, ví dụ: 100.000
Hoặc nhập nhiều trường: cost=500.000 wqty=50 wunit=kg rqty=1 runit=kg
Xoá một trường đã nhập: pack= (để trống giá trị)

Trường: cost, purchase, ship, loss, risk, wqty, wunit, rqty, runit, pack,
profit, target, tax, offline_ad, grab_ad, shopee_ad, style, mode, detail

Lệnh:
/calc k=v … tính giá
/settings xem cài đặt
/set k=v … đổi cài đặt
/mode profit|price
/style none|500|900
/detail on|off
/preset chọn mẫu ngành hàng
/reset về mặc định
/export xuất Excel`

func (b *Bot) handleStart(ctx context.Context, chatID int64, _ string) {
	b.sendText(chatID, "Xin chào! 👋\n\n"+helpText)
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64, _ string) {
	b.sendText(chatID, helpText)
}

func (b *Bot) handleSettings(ctx context.Context, chatID int64, _ string) {
	b.sendText(chatID, describeSettings(b.settings.Current()))
}

func (b *Bot) handleSet(ctx context.Context, chatID int64, args string) {
	f, warnings := form.ParseForm(args)
	patch := f.Overrides()
	if patch.Empty() {
		b.sendError(chatID, "Không có cài đặt nào để đổi. Ví dụ: /set profit=25 grab_ad=12")
		return
	}

	s := b.settings.ApplyPatch(patch)
	b.logger.Info("Settings changed", zap.Int64("chat_id", chatID), zap.String("args", args))

	b.sendText(chatID, withWarnings(describeSettings(s), warnings))
	b.recalculate(ctx, chatID)
}

func (b *Bot) handleMode(ctx context.Context, chatID int64, args string) {
	mode, ok := pricing.ParseMode(args)
	if !ok {
		b.sendError(chatID, "Chế độ: /mode profit hoặc /mode price")
		return
	}
	b.updateSettings(ctx, chatID, func(s *settings.Settings) {
		s.PricingMode = string(mode)
	})
}

func (b *Bot) handleStyle(ctx context.Context, chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		msg := tgbotapi.NewMessage(chatID, "Chọn kiểu giá đẹp:")
		msg.ReplyMarkup = createStyleKeyboard()
		b.sendMessage(msg)
		return
	}

	style, ok := pricing.ParseStyle(args)
	if !ok {
		b.sendError(chatID, "Kiểu giá: /style none, /style 500 hoặc /style 900")
		return
	}
	b.updateSettings(ctx, chatID, func(s *settings.Settings) {
		s.PriceStyle = string(style)
	})
}

func (b *Bot) handleDetail(ctx context.Context, chatID int64, args string) {
	on, ok := form.ParseSwitch(args)
	if !ok {
		b.sendError(chatID, "Dùng /detail on hoặc /detail off")
		return
	}
	b.updateSettings(ctx, chatID, func(s *settings.Settings) {
		s.IsDetailMode = on
	})
}

func (b *Bot) handlePreset(ctx context.Context, chatID int64, args string) {
	key := strings.TrimSpace(args)
	if key == "" {
		msg := tgbotapi.NewMessage(chatID, "Chọn mẫu ngành hàng:")
		msg.ReplyMarkup = createPresetKeyboard(b.presets.List())
		b.sendMessage(msg)
		return
	}
	b.applyPreset(ctx, chatID, key)
}

func (b *Bot) applyPreset(ctx context.Context, chatID int64, key string) {
	p, ok := b.presets.Get(key)
	if !ok {
		b.sendError(chatID, "Không tìm thấy mẫu "+key)
		return
	}

	b.logger.Info("Applying preset", zap.String("preset", p.Key))
	b.updateSettings(ctx, chatID, func(s *settings.Settings) {
		*s = settings.ApplyPreset(*s, p)
	})
}

func (b *Bot) handleReset(ctx context.Context, chatID int64, _ string) {
	b.settings.Reset(ctx)
	if err := b.state.Drop(ctx); err != nil {
		b.logger.Error("Failed to drop draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	b.sendText(chatID, "🔄 Đã khôi phục cài đặt mặc định\n\n"+describeSettings(b.settings.Current()))
}

func (b *Bot) updateSettings(ctx context.Context, chatID int64, fn func(*settings.Settings)) {
	s := b.settings.Update(fn)
	b.sendText(chatID, "✅ Đã lưu\n\n"+describeSettings(s))
	b.recalculate(ctx, chatID)
}
