package handler

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_house/internal/domain"
	"auction_house/internal/domain/value"
	"auction_house/internal/transport/bot/view"
	"auction_house/pkg/logx"
)

var (
	errMissingLotID = errors.New("missing lot id")
	errInvalidLotID = errors.New("invalid lot id")
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	record, err := h.engine.Snapshot(ctx)
	if err != nil {
		logger(ctx).Error("engine.Snapshot", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.StatusError)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Status(record))
}

func (h *Handler) OnStartLot(ctx *th.Context, msg telego.Message) error {
	lotID, err := lotIDFromCommand(msg.Text)
	switch {
	case errors.Is(err, errMissingLotID):
		return h.sendHTML(ctx, msg.Chat.ID, view.StartLotMissingArgument)
	case err != nil:
		return h.send(ctx, msg.Chat.ID, view.StartLotInvalidID)
	}

	if err = h.engine.StartLot(ctx, operator(), lotID); err != nil {
		logger(ctx).Warn("lot start from chat failed", slog.String(logx.FieldLotID, lotID.String()), logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.StartLotFailed, html.EscapeString(reason(err))))
	}

	return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.StartLotSuccess, lotID))
}

func (h *Handler) OnLots(ctx *th.Context, msg telego.Message) error {
	text, keyboard, err := h.lotsPage(ctx, 1)
	if err != nil {
		logger(ctx).Error("catalog.ListLots", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.LotsError)
	}

	params := &telego.SendMessageParams{
		ChatID:    tu.ID(msg.Chat.ID),
		Text:      text,
		ParseMode: telego.ModeHTML,
	}

	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err = ctx.Bot().SendMessage(ctx, params)

	return err
}

func (h *Handler) OnParties(ctx *th.Context, msg telego.Message) error {
	parties, err := h.catalog.ListParties(ctx, 100, 0)
	if err != nil {
		logger(ctx).Error("catalog.ListParties", logx.Error(err))
		return h.send(ctx, msg.Chat.ID, view.PartiesError)
	}

	if len(parties) == 0 {
		return h.send(ctx, msg.Chat.ID, view.PartiesEmpty)
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.Parties(parties))
}

// lotsPage запрашивает на один лот больше страницы, чтобы понять, есть ли следующая.
func (h *Handler) lotsPage(ctx *th.Context, page int) (string, *telego.InlineKeyboardMarkup, error) {
	lots, err := h.catalog.ListLots(ctx, value.LotPending, lotsPageSize+1, (page-1)*lotsPageSize)
	if err != nil {
		return "", nil, err
	}

	if len(lots) == 0 {
		return view.LotsEmpty, view.LotsKeyboard(page, false), nil
	}

	hasNext := len(lots) > lotsPageSize
	if hasNext {
		lots = lots[:lotsPageSize]
	}

	return view.Lots(lots, page), view.LotsKeyboard(page, hasNext), nil
}

func lotIDFromCommand(text string) (uuid.UUID, error) {
	args := strings.Fields(text)
	if len(args) < 2 {
		return uuid.Nil, errMissingLotID
	}

	id, err := uuid.Parse(args[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", errInvalidLotID, err)
	}

	return id, nil
}

func reason(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "внутренняя ошибка"
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    tu.ID(chatID),
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, tu.Message(tu.ID(chatID), text))

	return err
}
