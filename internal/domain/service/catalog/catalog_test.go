package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/service/catalog"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
)

type memoryLots struct {
	mu   sync.Mutex
	lots []*entity.Lot
}

func (m *memoryLots) Create(_ context.Context, lot *entity.Lot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lots = append(m.lots, lot)

	return nil
}

func (m *memoryLots) GetByID(_ context.Context, id uuid.UUID) (*entity.Lot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.lots {
		if l.ID == id {
			return l, nil
		}
	}

	return nil, domain.NewError(errcodes.LotNotFound, "lot not found")
}

func (m *memoryLots) List(_ context.Context, status value.LotStatus, limit, offset int) ([]*entity.Lot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.Lot
	for _, l := range m.lots {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}

	if offset >= len(out) {
		return nil, nil
	}

	return out[offset:min(len(out), offset+limit)], nil
}

type memoryParties struct {
	mu          sync.Mutex
	parties     map[uuid.UUID]*entity.Party
	existsCalls int
}

func (m *memoryParties) Create(_ context.Context, party *entity.Party) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.parties {
		if p.Name == party.Name {
			return domain.NewError(errcodes.PartyNameInUse, "party name is already taken")
		}
	}

	m.parties[party.ID] = party

	return nil
}

func (m *memoryParties) GetByID(_ context.Context, id uuid.UUID) (*entity.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.parties[id]
	if !ok {
		return nil, domain.NewError(errcodes.PartyNotFound, "party not found")
	}

	return p, nil
}

func (m *memoryParties) List(context.Context, int, int) ([]*entity.Party, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entity.Party, 0, len(m.parties))
	for _, p := range m.parties {
		out = append(out, p)
	}

	return out, nil
}

func (m *memoryParties) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.existsCalls++
	_, ok := m.parties[id]

	return ok, nil
}

func newService() (*catalog.Service, *memoryLots, *memoryParties) {
	lots := &memoryLots{}
	parties := &memoryParties{parties: make(map[uuid.UUID]*entity.Party)}

	return catalog.NewService(lots, parties), lots, parties
}

func TestCreateLot(t *testing.T) {
	tests := []struct {
		name      string
		lotName   string
		category  string
		basePrice int64
		code      string
	}{
		{name: "ok", lotName: " Virat ", category: "batsman", basePrice: 200},
		{name: "blank name", lotName: "  ", category: "batsman", basePrice: 200, code: errcodes.ValidationError.String()},
		{name: "zero price", lotName: "Virat", category: "batsman", basePrice: 0, code: errcodes.InvalidBasePrice.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)
			svc, lots, _ := newService()

			lot, err := svc.CreateLot(context.Background(), tt.lotName, tt.category, tt.basePrice)

			if tt.code != "" {
				code, ok := domain.GetCode(err)
				rq.True(ok)
				rq.Equal(tt.code, code.String())
				rq.Empty(lots.lots)

				return
			}

			rq.NoError(err)
			rq.Equal("Virat", lot.Name)
			rq.Equal(value.LotPending, lot.Status)
			rq.NotEqual(uuid.Nil, lot.ID)
			rq.Len(lots.lots, 1)
		})
	}
}

func TestListLotsPaging(t *testing.T) {
	tests := []struct {
		name    string
		status  value.LotStatus
		limit   int
		offset  int
		wantErr bool
	}{
		{name: "ok", limit: 10},
		{name: "filtered", status: value.LotPending, limit: 10},
		{name: "zero limit", limit: 0, wantErr: true},
		{name: "limit too large", limit: catalog.MaxPageSize + 1, wantErr: true},
		{name: "negative offset", limit: 10, offset: -1, wantErr: true},
		{name: "unknown status", status: "LOST", limit: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)
			svc, _, _ := newService()

			_, err := svc.CreateLot(context.Background(), "lot", "cat", 100)
			rq.NoError(err)

			lots, err := svc.ListLots(context.Background(), tt.status, tt.limit, tt.offset)
			if tt.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Len(lots, 1)
		})
	}
}

func TestCreateParty(t *testing.T) {
	rq := require.New(t)
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateParty(ctx, "Mumbai", -1)
	rq.True(domain.HasCode(err, errcodes.InvalidBalance))

	party, err := svc.CreateParty(ctx, "Mumbai", 1000)
	rq.NoError(err)
	rq.Equal(int64(1000), party.Balance)

	_, err = svc.CreateParty(ctx, "Mumbai", 500)
	rq.True(domain.HasCode(err, errcodes.PartyNameInUse))
}

func TestPartyExistsIsCached(t *testing.T) {
	rq := require.New(t)
	svc, _, parties := newService()
	ctx := context.Background()

	id := uuid.New()
	parties.parties[id] = &entity.Party{ID: id, Name: "Chennai", Balance: 100}

	for range 3 {
		ok, err := svc.PartyExists(ctx, id)
		rq.NoError(err)
		rq.True(ok)
	}
	rq.Equal(1, parties.existsCalls)

	// отрицательный ответ не кешируется
	missing := uuid.New()
	for range 2 {
		ok, err := svc.PartyExists(ctx, missing)
		rq.NoError(err)
		rq.False(ok)
	}
	rq.Equal(3, parties.existsCalls)
}

type memoryBids map[uuid.UUID][]entity.BidEntry

func (m memoryBids) ListBids(_ context.Context, lotID uuid.UUID) ([]entity.BidEntry, error) {
	return m[lotID], nil
}

func TestListLotBids(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc, _, _ := newService()

	lot, err := svc.CreateLot(ctx, "Bumrah", "bowler", 300)
	rq.NoError(err)

	bids, err := svc.ListLotBids(ctx, lot.ID)
	rq.NoError(err)
	rq.Empty(bids)

	entry := entity.BidEntry{ID: uuid.New(), Amount: 325, PartyID: uuid.New(), LotID: lot.ID}
	svc.WithBidHistory(memoryBids{lot.ID: {entry}})

	bids, err = svc.ListLotBids(ctx, lot.ID)
	rq.NoError(err)
	rq.Equal([]entity.BidEntry{entry}, bids)

	_, err = svc.ListLotBids(ctx, uuid.New())
	rq.True(domain.HasCode(err, errcodes.LotNotFound))
}
