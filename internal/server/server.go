package server

import "auction_house/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Server объединяет HTTP-серверы отдельных сущностей: торги и справочник.
type Server struct {
	AuctionServer
	CatalogServer
}

func NewServer(
	auctionServer AuctionServer,
	catalogServer CatalogServer,
) Server {
	return Server{
		AuctionServer: auctionServer,
		CatalogServer: catalogServer,
	}
}
