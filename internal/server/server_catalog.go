package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/httpx/reply"
	"auction_house/pkg/httpx/req"
	"auction_house/pkg/lox"
	"auction_house/pkg/rest"
)

const defaultPageSize = 50

type catalogService interface {
	CreateLot(ctx context.Context, name, category string, basePrice int64) (*entity.Lot, error)
	GetLot(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	ListLots(ctx context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error)
	ListLotBids(ctx context.Context, lotID uuid.UUID) ([]entity.BidEntry, error)
	CreateParty(ctx context.Context, name string, balance int64) (*entity.Party, error)
	GetParty(ctx context.Context, id uuid.UUID) (*entity.Party, error)
	ListParties(ctx context.Context, limit, offset int) ([]*entity.Party, error)
	PartyExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type CatalogServer struct {
	catalogService catalogService
}

func NewCatalogServer(catalogService catalogService) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
	}
}

func (s CatalogServer) getV1Lots(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return err
	}

	status := value.LotStatus(r.URL.Query().Get("status"))

	lots, err := s.catalogService.ListLots(ctx, status, limit, offset)
	if err != nil {
		return fmt.Errorf("catalogService.ListLots: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(lots, newRESTLot))

	return nil
}

func (s CatalogServer) getV1Lot(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseLotID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	lot, err := s.catalogService.GetLot(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.GetLot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLot(lot))

	return nil
}

func (s CatalogServer) getV1LotBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := parseLotID(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	bids, err := s.catalogService.ListLotBids(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.ListLotBids: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(bids, newRESTBidEntry))

	return nil
}

func (s CatalogServer) postV1Lot(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateLotRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	lot, err := s.catalogService.CreateLot(ctx, request.Name, request.Category, request.BasePrice)
	if err != nil {
		return fmt.Errorf("catalogService.CreateLot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTLot(lot))

	return nil
}

func (s CatalogServer) getV1Parties(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return err
	}

	parties, err := s.catalogService.ListParties(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("catalogService.ListParties: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(parties, newRESTParty))

	return nil
}

func (s CatalogServer) getV1Party(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(errcodes.InvalidPartyID),
			failure.WithDescription("invalid party id"),
		)
	}

	party, err := s.catalogService.GetParty(ctx, id)
	if err != nil {
		return fmt.Errorf("catalogService.GetParty: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTParty(party))

	return nil
}

func (s CatalogServer) postV1Party(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreatePartyRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	party, err := s.catalogService.CreateParty(ctx, request.Name, request.Balance)
	if err != nil {
		return fmt.Errorf("catalogService.CreateParty: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTParty(party))

	return nil
}

func paging(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	limit, err := intParam(query.Get("limit"), defaultPageSize)
	if err != nil {
		return 0, 0, err
	}

	offset, err := intParam(query.Get("offset"), 0)
	if err != nil {
		return 0, 0, err
	}

	return limit, offset, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription("limit and offset must be integers"),
		)
	}

	return v, nil
}
