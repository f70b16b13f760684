package modules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"auction_house/pkg/metrics"
)

// MetricServer отдаёт /metrics. Пустой адрес выключает сервер.
type MetricServer struct {
	ListenAddress string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	if m.ListenAddress == "" {
		logger(ctx).Info("prometheus server disabled")

		return
	}

	prometheusServer := metrics.NewPrometheusServer(m.ListenAddress)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}
