package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"auction_house/pkg/logx"
)

// Serve runs srv until ctx is cancelled, then shuts it down gracefully.
// A zero shutdownTimeout waits for in-flight requests without a deadline.
// Request contexts derive from ctx.
func Serve(ctx context.Context, name string, srv *http.Server, shutdownTimeout time.Duration) error {
	if srv.BaseContext == nil {
		srv.BaseContext = func(net.Listener) context.Context { return ctx }
	}

	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		<-ctx.Done()

		shutdownCtx := context.WithoutCancel(ctx)

		if shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, shutdownTimeout)
			defer cancel()
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger(ctx).Error("server.Shutdown", slog.String("server", name), logx.Error(err))
		}
	}()

	logger(ctx).Info(name+" server started", slog.String("address", srv.Addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: ListenAndServe: %w", name, err)
	}

	<-stopped

	logger(ctx).Info(name+" server stopped", slog.String("address", srv.Addr))

	return nil
}
