package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction_house/pkg/logx"
	"auction_house/pkg/middlewarex"
)

type RouterOptions struct {
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
	LogFieldMaxLen      int
}

// NewRouter собирает цепочку middleware в том же порядке для всех маршрутов:
// trace id → логгер → восстановление после паники → логирование → метрики.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.Metrics,
	)

	s.RegisterRoutes(r)

	return r
}
