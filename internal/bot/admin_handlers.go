package bot

import (
	"context"

	"channel-pricer/internal/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleExport(ctx context.Context, chatID int64, _ string) {
	draft, err := b.state.Get(ctx)
	if err != nil {
		b.logger.Error("Failed to get draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Không đọc được dữ liệu đã nhập")
		return
	}

	s := b.settings.Current()
	q := calculate(draft, s)
	if q.Empty {
		b.sendError(chatID, "Chưa có gì để xuất. Hãy nhập giá vốn trước")
		return
	}

	path, err := report.ExportQuote(q, s, b.reportsDir, b.now())
	if err != nil {
		b.logger.Error("Failed to export quote", zap.Error(err))
		b.sendError(chatID, "Không tạo được file Excel")
		return
	}

	b.logger.Info("Quote exported", zap.String("path", path))

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = "📊 Bảng giá đa kênh"

	if _, err := b.sender.Send(doc); err != nil {
		b.logger.Error("Failed to send Excel file", zap.Error(err))
		b.sendError(chatID, "Không gửi được file Excel")
	}
}
