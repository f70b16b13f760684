package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/contextx"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	partyCacheTTL     = 5 * time.Minute
	partyCacheCleanup = 10 * time.Minute

	MaxPageSize = 100
)

type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	List(ctx context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error)
}

type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Party, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type BidHistory interface {
	ListBids(ctx context.Context, lotID uuid.UUID) ([]entity.BidEntry, error)
}

// Service — справочник лотов и участников. Лоты только создаются здесь,
// закрывает их движок торгов.
type Service struct {
	lots         LotRepository
	parties      PartyRepository
	bids         BidHistory
	knownParties *cache.Cache
}

func NewService(lots LotRepository, parties PartyRepository) *Service {
	return &Service{
		lots:         lots,
		parties:      parties,
		knownParties: cache.New(partyCacheTTL, partyCacheCleanup),
	}
}

// WithBidHistory подключает журнал ставок. Без него история лота пуста.
func (s *Service) WithBidHistory(bids BidHistory) *Service {
	s.bids = bids
	return s
}

func (s *Service) CreateLot(ctx context.Context, name, category string, basePrice int64) (*entity.Lot, error) {
	name, category = strings.TrimSpace(name), strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, domain.NewError(errcodes.ValidationError, "name and category are required")
	}

	if !value.BidAmountInRange(basePrice) {
		return nil, domain.NewError(errcodes.InvalidBasePrice, "base price must be positive and within the bid limit")
	}

	lot := &entity.Lot{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
		Status:    value.LotPending,
	}

	if err := s.lots.Create(ctx, lot); err != nil {
		return nil, err
	}

	logger(ctx).Info("lot created", logx.FieldLotID, lot.ID.String(), logx.FieldAmount, basePrice)

	return lot, nil
}

func (s *Service) GetLot(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	return s.lots.GetByID(ctx, id)
}

func (s *Service) ListLots(ctx context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error) {
	if err := validatePaging(limit, offset); err != nil {
		return nil, err
	}

	switch status {
	case "", value.LotPending, value.LotSold, value.LotUnsold:
	default:
		return nil, domain.NewError(errcodes.ValidationError, "unknown lot status")
	}

	return s.lots.List(ctx, status, limit, offset)
}

// ListLotBids возвращает журнал ставок лота. У проданного лота в нём одна
// запись: ставка-победитель.
func (s *Service) ListLotBids(ctx context.Context, lotID uuid.UUID) ([]entity.BidEntry, error) {
	if _, err := s.lots.GetByID(ctx, lotID); err != nil {
		return nil, err
	}

	if s.bids == nil {
		return []entity.BidEntry{}, nil
	}

	return s.bids.ListBids(ctx, lotID)
}

func (s *Service) CreateParty(ctx context.Context, name string, balance int64) (*entity.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewError(errcodes.ValidationError, "name is required")
	}

	if balance < 0 {
		return nil, domain.NewError(errcodes.InvalidBalance, "balance must not be negative")
	}

	party := &entity.Party{
		ID:      uuid.New(),
		Name:    name,
		Balance: balance,
	}

	if err := s.parties.Create(ctx, party); err != nil {
		return nil, err
	}

	s.knownParties.SetDefault(party.ID.String(), struct{}{})
	logger(ctx).Info("party created", logx.FieldPartyID, party.ID.String())

	return party, nil
}

func (s *Service) GetParty(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	return s.parties.GetByID(ctx, id)
}

func (s *Service) ListParties(ctx context.Context, limit, offset int) ([]*entity.Party, error) {
	if err := validatePaging(limit, offset); err != nil {
		return nil, err
	}

	return s.parties.List(ctx, limit, offset)
}

// PartyExists проверяет привязку участника при каждом запросе, поэтому
// положительный ответ кешируется. Участники не удаляются.
func (s *Service) PartyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	key := id.String()

	if _, ok := s.knownParties.Get(key); ok {
		return true, nil
	}

	exists, err := s.parties.Exists(ctx, id)
	if err != nil {
		return false, err
	}

	if exists {
		s.knownParties.SetDefault(key, struct{}{})
	}

	return exists, nil
}

func validatePaging(limit, offset int) error {
	if limit <= 0 || limit > MaxPageSize || offset < 0 {
		return domain.NewError(errcodes.InvalidPaging, "limit must be in 1..100 and offset must not be negative")
	}
	return nil
}
