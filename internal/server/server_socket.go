package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/gorilla/websocket"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/internal/infrastructure/broadcast"
	"auction_house/pkg/contextx"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/httpx/req"
	"auction_house/pkg/logx"
	"auction_house/pkg/rest"
)

const (
	socketPlaceBid   = "place_bid"
	socketStartLot   = "admin_start_auction"
	socketSnapshot   = "snapshot"
	socketConnClosed = "socket closed"
)

// getV1AuctionWS держит соединение до его закрытия. Ошибки обработки
// сообщений уходят только в этот сокет.
func (s AuctionServer) getV1AuctionWS(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	identity, err := identityFromContext(ctx)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту.
		logger(ctx).Warn("websocket upgrade failed", logx.Error(err))
		return nil
	}

	client := s.hub.Register(conn)
	defer s.hub.Unregister(client)

	ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String("socket-id", client.ID())))
	logger(ctx).Info("socket connected")

	go client.WritePump(ctx)

	s.sendSnapshot(ctx, client)

	client.PrepareRead()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger(ctx).Warn(socketConnClosed, logx.Error(err))
			} else {
				logger(ctx).Info(socketConnClosed)
			}

			return nil
		}

		s.handleSocketMessage(ctx, client, identity, data)
	}
}

func (s AuctionServer) handleSocketMessage(
	ctx context.Context,
	client *broadcast.Client,
	identity value.Identity,
	data []byte,
) {
	ctx, traceID := contextx.WithNewTraceID(ctx)
	ctx = contextx.WithLogger(ctx, logger(ctx).With(logx.Stringer(logx.FieldTraceID, traceID)))

	var msg rest.SocketMessage

	if err := req.Unmarshal(ctx, data, &msg); err != nil {
		s.sendError(ctx, client, errcodes.InvalidSocketMessage, failure.Description(err))
		return
	}

	switch msg.Type {
	case socketPlaceBid:
		admitted, err := s.engine.PlaceBid(ctx, identity, msg.Amount)
		if err != nil {
			s.sendDomainError(ctx, client, err)
			return
		}

		if !admitted {
			s.sendError(ctx, client, errcodes.BidRejected, "bid is below the required minimum")
		}
	case socketStartLot:
		lotID, err := parseLotID(msg.LotID)
		if err != nil {
			s.sendError(ctx, client, errcodes.InvalidLotID, "invalid lot id")
			return
		}

		if err = s.engine.StartLot(ctx, identity, lotID); err != nil {
			s.sendDomainError(ctx, client, err)
		}
	case socketSnapshot:
		s.sendSnapshot(ctx, client)
	}
}

func (s AuctionServer) sendSnapshot(ctx context.Context, client *broadcast.Client) {
	record, err := s.engine.Snapshot(ctx)
	if err != nil {
		s.sendDomainError(ctx, client, err)
		return
	}

	if err = client.Send(entity.StateSyncEvent(record)); err != nil {
		logger(ctx).Warn("snapshot not delivered", logx.Error(err))
	}
}

func (s AuctionServer) sendDomainError(ctx context.Context, client *broadcast.Client, err error) {
	code := errcodes.InternalServerError
	message := "internal error"

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		code, message = appErr.Code, appErr.Message
	}

	logger(ctx).Warn("socket message failed", slog.String("code", code.String()), logx.Error(err))
	s.sendError(ctx, client, code, message)
}

func (s AuctionServer) sendError(ctx context.Context, client *broadcast.Client, code failure.ErrorCode, message string) {
	if err := client.Send(entity.ErrorEvent(nil, code.String(), message)); err != nil {
		logger(ctx).Warn("error not delivered", logx.Error(err))
	}
}
