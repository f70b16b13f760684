package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"auction_house/internal/transport/bot/handler"
	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot принимает команды оператора через long polling.
type Bot struct {
	bot     *telego.Bot
	adminID int64
	handler *handler.Handler
}

func New(bot *telego.Bot, adminID int64, h *handler.Handler) *Bot {
	return &Bot{
		bot:     bot,
		adminID: adminID,
		handler: h,
	}
}

// Run блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: 60,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		<-ctx.Done()

		if err := botHandler.Stop(); err != nil {
			logger(ctx).Error("botHandler.Stop", logx.Error(err))
		}
	}()

	logger(ctx).Info("operator bot started", slog.Int64("admin-id", b.adminID))

	if err = botHandler.Start(); err != nil {
		return fmt.Errorf("botHandler.Start: %w", err)
	}

	logger(ctx).Info("operator bot stopped")

	return nil
}
