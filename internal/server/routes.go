package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction_house/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Use(Identity(s.CatalogServer.catalogService))

			r.Route("/auction", func(r chi.Router) {
				r.Get("/", handler(s.getV1Auction))
				r.Get("/ws", handler(s.getV1AuctionWS))
				r.Post("/bids", handler(s.postV1AuctionBid))
				r.Post("/lots/{id}/start", handler(s.postV1AuctionLotStart))
			})

			r.Route("/lots", func(r chi.Router) {
				r.Get("/", handler(s.getV1Lots))
				r.Get("/{id}", handler(s.getV1Lot))
				r.Get("/{id}/bids", handler(s.getV1LotBids))
				r.With(AdminOnly).Post("/", handler(s.postV1Lot))
			})

			r.Route("/parties", func(r chi.Router) {
				r.Get("/", handler(s.getV1Parties))
				r.Get("/{id}", handler(s.getV1Party))
				r.With(AdminOnly).Post("/", handler(s.postV1Party))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			ctx := r.Context()

			if code, unavailable := unavailableCode(err); unavailable {
				reply.Unavailable(ctx, w, code, err)
				return
			}

			reply.Error(ctx, w, toFailure(err))
		}
	}
}
