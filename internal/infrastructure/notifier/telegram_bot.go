package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_house/internal/domain/entity"
	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const outcomeBuffer = 32

type MessageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot пишет итоги торгов и аварии расчёта в чат операторов.
type TelegramBot struct {
	bot      MessageSender
	chatID   int64
	outcomes chan entity.Event
}

func NewTelegramBot(bot MessageSender, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:      bot,
		chatID:   chatID,
		outcomes: make(chan entity.Event, outcomeBuffer),
	}
}

// Publish не блокирует цикл отсчёта: итог кладётся в очередь для Run,
// тики и ставки в чат не попадают.
func (b *TelegramBot) Publish(ctx context.Context, event entity.Event) {
	if !event.IsOutcome() {
		return
	}

	select {
	case b.outcomes <- event:
	default:
		logger(ctx).Warn("operator chat queue is full, outcome dropped", slog.String(logx.FieldEvent, string(event.Kind)))
	}
}

// Run отправляет накопленные итоги до отмены контекста.
func (b *TelegramBot) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-b.outcomes:
			if err := b.SendEvent(ctx, event); err != nil {
				logger(ctx).Error("failed to send outcome", slog.String(logx.FieldEvent, string(event.Kind)), logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendEvent(ctx context.Context, event entity.Event) error {
	text, ok := FormatEvent(event)
	if !ok {
		return nil
	}

	return b.sendHTML(ctx, text)
}

func (b *TelegramBot) SendSettlementFailure(ctx context.Context, failure entity.SettlementFailure) error {
	return b.sendHTML(ctx, FormatSettlementFailure(failure))
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	if _, err := b.bot.SendMessage(ctx, tu.Message(tu.ID(b.chatID), text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func (b *TelegramBot) sendHTML(ctx context.Context, text string) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
