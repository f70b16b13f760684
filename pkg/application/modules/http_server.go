package modules

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"auction_house/pkg/httpx"
)

// HTTPServer модуль, ответственный за запуск и остановку HTTP-сервера
// (graceful shutdown). Захваченные websocket-соединения Shutdown не ждёт,
// их закрывает хаб.
type HTTPServer struct {
	ShutdownTimeout time.Duration
}

func (h HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	g.Go(func() error {
		return httpx.Serve(ctx, "http", httpServer, h.ShutdownTimeout)
	})
}
