package bot

import (
	"context"

	"channel-pricer/internal/form"
	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"

	"go.uber.org/zap"
)

// handleCalc merges the typed fields into the last form, applies any
// setting overrides and answers with a fresh quote.
func (b *Bot) handleCalc(ctx context.Context, chatID int64, text string) {
	next, warnings := form.ParseForm(text)

	draft, err := b.state.Get(ctx)
	if err != nil {
		b.logger.Error("Failed to get draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	draft = draft.Merge(next)

	if err := b.state.Set(ctx, draft); err != nil {
		b.logger.Error("Failed to save draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	s := b.settings.ApplyPatch(next.Overrides())
	q := calculate(draft, s)

	b.sendText(chatID, withWarnings(form.RenderQuote(q, s), warnings))
}

// recalculate re-sends the quote of the last form after a settings change.
func (b *Bot) recalculate(ctx context.Context, chatID int64) {
	draft, err := b.state.Get(ctx)
	if err != nil {
		b.logger.Error("Failed to get draft",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}
	if draft.Empty() {
		return
	}

	s := b.settings.Current()
	b.sendText(chatID, form.RenderQuote(calculate(draft, s), s))
}

func calculate(f form.Form, s settings.Settings) pricing.Quote {
	return pricing.Calculate(f.CostInput(s), s.PricingConfig())
}
