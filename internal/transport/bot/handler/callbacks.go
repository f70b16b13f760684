package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_house/internal/transport/bot/view"
	"auction_house/pkg/logx"
)

func (h *Handler) OnLotsCallback(ctx *th.Context, query telego.CallbackQuery) error {
	page := pageFromCallback(query.Data)

	text, keyboard, err := h.lotsPage(ctx, page)
	if err != nil {
		_ = ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.LotsError).WithShowAlert())

		return err
	}

	if query.Message != nil {
		_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(query.Message.GetChat().ID),
			MessageID:   query.Message.GetMessageID(),
			Text:        text,
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: keyboard,
		})
		// Telegram отвечает ошибкой, если текст не изменился.
		if err != nil {
			logger(ctx).Debug("lots page not edited", logx.Error(err))
		}
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func pageFromCallback(data string) int {
	var page int

	if _, err := fmt.Sscanf(data, view.LotsPagePrefix+"%d", &page); err != nil || page < 1 {
		return 1
	}

	return page
}
