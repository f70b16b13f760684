package modules

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"auction_house/pkg/probe"
)

// ProbeServer: /ready проверяет Postgres и, при хранении записи аукциона
// в Redis, сам Redis. /healthz отвечает всегда.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	CheckTimeout  time.Duration
	Checks        []probe.Check
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	probeServer := probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:         p.Name,
			Version:      p.Version,
			CheckTimeout: p.CheckTimeout,
		},
		p.Checks...,
	)

	g.Go(func() error {
		if err := probeServer.Run(ctx); err != nil {
			return fmt.Errorf("probeServer.Run: %w", err)
		}

		return nil
	})
}
