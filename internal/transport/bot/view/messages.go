package view

const (
	StartMessage = `🏛 <b>Аукционный дом</b>

/status — состояние торгов
/lots — лоты в ожидании
/startlot <code>ID</code> — открыть торги по лоту
/parties — участники и балансы`

	StartLotMissingArgument = "❌ Использование: /startlot <code>ID</code>"
	StartLotInvalidID       = "❌ Неверный формат ID лота"
	StartLotSuccess         = "🚀 Торги по лоту <code>%s</code> открыты"
	StartLotFailed          = "❌ Не удалось открыть торги: %s"

	LotsError  = "❌ Ошибка получения лотов"
	LotsEmpty  = "📭 Лотов в ожидании нет"
	LotsHeader = "📚 <b>Лоты в ожидании</b> (стр. %d)\n\n"
	LotItem    = "📦 <b>%s</b> · %s\n└ <code>%s</code> · старт %d\n"

	PartiesError  = "❌ Ошибка получения участников"
	PartiesEmpty  = "📭 Участников нет"
	PartiesHeader = "👥 <b>Участники</b>\n\n"
	PartyItem     = "• <b>%s</b>: %d\n└ <code>%s</code>\n"

	StatusError = "❌ Хранилище состояния недоступно"
)
