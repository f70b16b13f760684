package server_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
)

type memoryStore struct {
	mu      sync.Mutex
	lots    map[uuid.UUID]*entity.Lot
	order   []uuid.UUID
	parties map[uuid.UUID]*entity.Party
	bids    []entity.BidEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		lots:    make(map[uuid.UUID]*entity.Lot),
		parties: make(map[uuid.UUID]*entity.Party),
	}
}

// memoryLots и memoryParties делят одно хранилище, как таблицы одной базы.
type (
	memoryLots    struct{ *memoryStore }
	memoryParties struct{ *memoryStore }
)

func (m memoryLots) Create(_ context.Context, lot *entity.Lot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *lot
	m.lots[lot.ID] = &cp
	m.order = append(m.order, lot.ID)

	return nil
}

func (m memoryLots) GetByID(_ context.Context, id uuid.UUID) (*entity.Lot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lot, ok := m.lots[id]
	if !ok {
		return nil, domain.NewError(errcodes.LotNotFound, "lot not found")
	}

	cp := *lot

	return &cp, nil
}

func (m memoryLots) List(_ context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.Lot
	for _, id := range m.order {
		if lot := m.lots[id]; status == "" || lot.Status == status {
			cp := *lot
			out = append(out, &cp)
		}
	}

	if offset >= len(out) {
		return []*entity.Lot{}, nil
	}

	return out[offset:min(len(out), offset+limit)], nil
}

func (m memoryLots) MarkUnsold(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lot, ok := m.lots[id]
	if !ok {
		return domain.NewError(errcodes.LotNotFound, "lot not found")
	}

	if lot.Status != value.LotPending {
		return domain.NewError(errcodes.LotNotPending, "lot is already closed")
	}

	lot.Status = value.LotUnsold

	return nil
}

func (m memoryLots) SettleSale(_ context.Context, sale entity.Sale) (entity.BidEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	party, ok := m.parties[sale.PartyID]
	if !ok {
		return entity.BidEntry{}, domain.NewError(errcodes.PartyNotFound, "party not found")
	}

	if party.Balance < sale.Amount {
		return entity.BidEntry{}, domain.NewError(errcodes.InsufficientFunds, "insufficient funds")
	}

	lot := m.lots[sale.LotID]
	party.Balance -= sale.Amount

	winner, price := sale.PartyID, sale.Amount
	lot.Status = value.LotSold
	lot.WinningPartyID = &winner
	lot.FinalPrice = &price

	entry := entity.BidEntry{ID: uuid.New(), Amount: sale.Amount, PartyID: sale.PartyID, LotID: sale.LotID}
	m.bids = append(m.bids, entry)

	return entry, nil
}

func (m memoryParties) Create(_ context.Context, party *entity.Party) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.parties {
		if p.Name == party.Name {
			return domain.NewError(errcodes.PartyNameInUse, "party name is already taken")
		}
	}

	cp := *party
	m.parties[party.ID] = &cp

	return nil
}

func (m memoryParties) GetByID(_ context.Context, id uuid.UUID) (*entity.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	party, ok := m.parties[id]
	if !ok {
		return nil, domain.NewError(errcodes.PartyNotFound, "party not found")
	}

	cp := *party

	return &cp, nil
}

func (m memoryParties) List(context.Context, int, int) ([]*entity.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entity.Party, 0, len(m.parties))
	for _, p := range m.parties {
		cp := *p
		out = append(out, &cp)
	}

	return out, nil
}

func (m memoryParties) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.parties[id]

	return ok, nil
}

func (m memoryLots) ListBids(_ context.Context, lotID uuid.UUID) ([]entity.BidEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []entity.BidEntry{}
	for _, bid := range m.bids {
		if bid.LotID == lotID {
			out = append(out, bid)
		}
	}

	return out, nil
}
