package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"auction_house/internal/domain/entity"
)

// LotsPagePrefix — префикс callback-данных кнопок пагинации лотов.
const LotsPagePrefix = "lots_page:"

func Status(record entity.AuctionRecord) string {
	if !record.IsRunning() {
		return fmt.Sprintf("📊 <b>Статус:</b> %s\n\nТорги не идут.", record.Status)
	}

	leader := "ставок нет"
	if record.HasLeader() {
		leader = "<code>" + record.LeaderID.String() + "</code>"
	}

	return fmt.Sprintf(
		"📊 <b>Статус:</b> %s\n\n"+
			"📦 <b>Лот:</b> <code>%s</code>\n"+
			"💰 <b>Текущая ставка:</b> %d\n"+
			"🏆 <b>Лидер:</b> %s\n"+
			"⏱ <b>Осталось:</b> %d с",
		record.Status, record.ActiveLotID, record.CurrentBid, leader, record.Countdown,
	)
}

func Lots(lots []*entity.Lot, page int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(LotsHeader, page))

	for _, lot := range lots {
		sb.WriteString(fmt.Sprintf(LotItem,
			html.EscapeString(lot.Name), html.EscapeString(lot.Category), lot.ID, lot.BasePrice))
	}

	return sb.String()
}

func Parties(parties []*entity.Party) string {
	var sb strings.Builder

	sb.WriteString(PartiesHeader)

	for _, party := range parties {
		sb.WriteString(fmt.Sprintf(PartyItem, html.EscapeString(party.Name), party.Balance, party.ID))
	}

	return sb.String()
}

// LotsKeyboard возвращает nil, если листать некуда.
func LotsKeyboard(page int, hasNext bool) *telego.InlineKeyboardMarkup {
	if page <= 1 && !hasNext {
		return nil
	}

	var buttons []telego.InlineKeyboardButton

	if page > 1 {
		buttons = append(buttons, tu.InlineKeyboardButton("⬅️").
			WithCallbackData(fmt.Sprintf("%s%d", LotsPagePrefix, page-1)))
	}

	buttons = append(buttons, tu.InlineKeyboardButton(fmt.Sprintf("%d", page)).
		WithCallbackData("noop"))

	if hasNext {
		buttons = append(buttons, tu.InlineKeyboardButton("➡️").
			WithCallbackData(fmt.Sprintf("%s%d", LotsPagePrefix, page+1)))
	}

	return tu.InlineKeyboard(tu.InlineKeyboardRow(buttons...))
}
