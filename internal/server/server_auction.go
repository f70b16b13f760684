package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/internal/infrastructure/broadcast"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/httpx/reply"
	"auction_house/pkg/httpx/req"
	"auction_house/pkg/rest"
)

type auctionEngine interface {
	StartLot(ctx context.Context, caller value.Identity, lotID uuid.UUID) error
	PlaceBid(ctx context.Context, caller value.Identity, amount int64) (bool, error)
	Snapshot(ctx context.Context) (entity.AuctionRecord, error)
}

type AuctionServer struct {
	engine   auctionEngine
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
}

func NewAuctionServer(engine auctionEngine, hub *broadcast.Hub) AuctionServer {
	return AuctionServer{
		engine: engine,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin проверяет шлюз перед сервисом.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s AuctionServer) getV1Auction(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	record, err := s.engine.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("engine.Snapshot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAuctionState(record))

	return nil
}

func (s AuctionServer) postV1AuctionLotStart(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	identity, err := identityFromContext(ctx)
	if err != nil {
		return fmt.Errorf("identityFromContext: %w", err)
	}

	lotID, err := parseLotID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	if err = s.engine.StartLot(ctx, identity, lotID); err != nil {
		return fmt.Errorf("engine.StartLot: %w", err)
	}

	record, err := s.engine.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("engine.Snapshot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTAuctionState(record))

	return nil
}

func (s AuctionServer) postV1AuctionBid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	identity, err := identityFromContext(ctx)
	if err != nil {
		return fmt.Errorf("identityFromContext: %w", err)
	}

	var request rest.PlaceBidRequest

	if err = req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	admitted, err := s.engine.PlaceBid(ctx, identity, request.Amount)
	if err != nil {
		return fmt.Errorf("engine.PlaceBid: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PlaceBidResponse{
		Admitted: admitted,
		Amount:   request.Amount,
	})

	return nil
}

func parseLotID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(errcodes.InvalidLotID),
			failure.WithDescription("invalid lot id"),
		)
	}

	return id, nil
}
