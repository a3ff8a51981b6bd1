package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"channel-pricer/internal/config"
	"channel-pricer/internal/settings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of the Telegram API the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api        *tgbotapi.BotAPI
	sender     Sender
	logger     *zap.Logger
	settings   *settings.Manager
	presets    *settings.Catalog
	state      *StateStorage
	ownerID    int64
	reportsDir string
	now        func() time.Time
	mu         sync.Mutex
	handlers   map[string]func(context.Context, int64, string)
}

func New(
	token string,
	manager *settings.Manager,
	presets *settings.Catalog,
	state *StateStorage,
	logger *zap.Logger,
	cfg *config.Config,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = cfg.LogLevel == "debug"

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, manager, presets, state, logger, cfg.OwnerChatID, cfg.ReportsDir)
	b.api = botAPI
	return b, nil
}

func newBot(
	sender Sender,
	manager *settings.Manager,
	presets *settings.Catalog,
	state *StateStorage,
	logger *zap.Logger,
	ownerID int64,
	reportsDir string,
) *Bot {
	b := &Bot{
		sender:     sender,
		logger:     logger,
		settings:   manager,
		presets:    presets,
		state:      state,
		ownerID:    ownerID,
		reportsDir: reportsDir,
		now:        time.Now,
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		"start":    b.handleStart,
		"help":     b.handleHelp,
		"calc":     b.handleCalc,
		"settings": b.handleSettings,
		"set":      b.handleSet,
		"mode":     b.handleMode,
		"style":    b.handleStyle,
		"detail":   b.handleDetail,
		"preset":   b.handlePreset,
		"reset":    b.handleReset,
		"export":   b.handleExport,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("bot API is not initialized")
	}

	b.logger.Info("Starting bot", zap.Int64("owner_chat_id", b.ownerID))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !b.isOwner(chatID) {
		b.logger.Debug("Ignoring message from stranger", zap.Int64("chat_id", chatID))
		return
	}

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		handler, exists := b.handlers[strings.ToLower(msg.Command())]
		if !exists {
			b.sendError(chatID, "Lệnh không hợp lệ. Gõ /help để xem hướng dẫn")
			return
		}
		handler(ctx, chatID, msg.CommandArguments())
		return
	}

	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	b.handleCalc(ctx, chatID, msg.Text)
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID

	if !b.isOwner(chatID) {
		b.logger.Debug("Ignoring callback from stranger", zap.Int64("chat_id", chatID))
		return
	}

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", callback.Data))

	if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	kind, value, _ := strings.Cut(callback.Data, ":")
	switch kind {
	case callbackPreset:
		b.applyPreset(ctx, chatID, value)
	case callbackStyle:
		b.handleStyle(ctx, chatID, value)
	default:
		b.logger.Warn("Unknown callback", zap.String("data", callback.Data))
	}
}

func (b *Bot) isOwner(chatID int64) bool {
	return b.ownerID != 0 && chatID == b.ownerID
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}
