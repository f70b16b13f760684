package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"auction_house/internal/transport/bot/middleware"
	"auction_house/internal/transport/bot/view"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnLots, th.CommandEqual("lots"))
	adminGroup.HandleMessage(h.OnStartLot, th.CommandEqual("startlot"))
	adminGroup.HandleMessage(h.OnParties, th.CommandEqual("parties"))

	cbGroup := bh.Group(th.AnyCallbackQuery())
	cbGroup.Use(middleware.AdminOnly(adminID))

	cbGroup.HandleCallbackQuery(h.OnLotsCallback, th.CallbackDataPrefix(view.LotsPagePrefix))
}
