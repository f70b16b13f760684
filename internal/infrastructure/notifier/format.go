package notifier

import (
	"fmt"
	"html"

	"auction_house/internal/domain/entity"
)

func FormatEvent(event entity.Event) (string, bool) {
	switch data := event.Data.(type) {
	case entity.SoldData:
		return fmt.Sprintf(
			"🔨 <b>Лот продан</b>\n\n"+
				"📦 <b>Лот:</b> <code>%s</code>\n"+
				"🏆 <b>Победитель:</b> <code>%s</code>\n"+
				"💰 <b>Цена:</b> %d",
			data.LotID, data.WinnerID, data.Amount,
		), true
	case entity.UnsoldData:
		return fmt.Sprintf(
			"🕳 <b>Лот не продан</b>\n\n📦 <b>Лот:</b> <code>%s</code>",
			data.LotID,
		), true
	case entity.ErrorData:
		lot := "—"
		if data.LotID != nil {
			lot = data.LotID.String()
		}

		return fmt.Sprintf(
			"🚨 <b>Ошибка торгов</b>\n\n"+
				"📦 <b>Лот:</b> <code>%s</code>\n"+
				"❗ <b>Код:</b> %s\n"+
				"📝 %s",
			lot, html.EscapeString(data.Code), html.EscapeString(data.Message),
		), true
	default:
		return "", false
	}
}

func FormatSettlementFailure(f entity.SettlementFailure) string {
	party := "—"
	if f.PartyID != nil {
		party = f.PartyID.String()
	}

	return fmt.Sprintf(
		"🚨 <b>Расчёт не проведён</b>\n\n"+
			"📦 <b>Лот:</b> <code>%s</code> (остался PENDING)\n"+
			"👤 <b>Лидер:</b> <code>%s</code>\n"+
			"💰 <b>Ставка:</b> %d\n"+
			"❗ <b>Код:</b> %s\n"+
			"📝 %s\n\n"+
			"Нужен ручной разбор.",
		f.LotID, party, f.Amount, html.EscapeString(f.Code), html.EscapeString(f.Reason),
	)
}
