package handler

import (
	"context"

	"github.com/google/uuid"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const lotsPageSize = 10

type auctionEngine interface {
	StartLot(ctx context.Context, caller value.Identity, lotID uuid.UUID) error
	Snapshot(ctx context.Context) (entity.AuctionRecord, error)
}

type catalogService interface {
	ListLots(ctx context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error)
	ListParties(ctx context.Context, limit, offset int) ([]*entity.Party, error)
}

// Handler обслуживает команды оператора. Все команды выполняются от имени
// администратора: доступ к ним ограничивает middleware.AdminOnly.
type Handler struct {
	engine  auctionEngine
	catalog catalogService
}

func New(engine auctionEngine, catalog catalogService) *Handler {
	return &Handler{
		engine:  engine,
		catalog: catalog,
	}
}

func operator() value.Identity {
	return value.Identity{Role: value.RoleAdmin}
}
