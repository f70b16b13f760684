package auction

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
)

// fakeLedger ведёт лоты, участников и журнал в памяти и применяет продажу
// целиком или никак.
type fakeLedger struct {
	mu      sync.Mutex
	lots    map[uuid.UUID]*entity.Lot
	parties map[uuid.UUID]*entity.Party
	bids    []entity.BidEntry
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		lots:    make(map[uuid.UUID]*entity.Lot),
		parties: make(map[uuid.UUID]*entity.Party),
	}
}

func (l *fakeLedger) addLot(basePrice int64) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New()
	l.lots[id] = &entity.Lot{ID: id, Name: "lot", Category: "forward", BasePrice: basePrice, Status: value.LotPending}

	return id
}

func (l *fakeLedger) addParty(balance int64) uuid.UUID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New()
	l.parties[id] = &entity.Party{ID: id, Name: id.String(), Balance: balance}

	return id
}

func (l *fakeLedger) lot(id uuid.UUID) entity.Lot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return *l.lots[id]
}

func (l *fakeLedger) balance(id uuid.UUID) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.parties[id].Balance
}

func (l *fakeLedger) entries() []entity.BidEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]entity.BidEntry(nil), l.bids...)
}

func (l *fakeLedger) GetByID(_ context.Context, id uuid.UUID) (*entity.Lot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lot, ok := l.lots[id]
	if !ok {
		return nil, domain.NewError(errcodes.LotNotFound, "lot not found")
	}

	cp := *lot

	return &cp, nil
}

func (l *fakeLedger) MarkUnsold(_ context.Context, id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lot, ok := l.lots[id]
	if !ok {
		return domain.NewError(errcodes.LotNotFound, "lot not found")
	}

	if lot.Status != value.LotPending {
		return domain.NewError(errcodes.LotNotPending, "lot is already closed")
	}

	lot.Status = value.LotUnsold

	return nil
}

func (l *fakeLedger) SettleSale(_ context.Context, sale entity.Sale) (entity.BidEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	party, ok := l.parties[sale.PartyID]
	if !ok {
		return entity.BidEntry{}, domain.NewError(errcodes.PartyNotFound, "party not found")
	}

	if party.Balance-sale.Amount < 0 {
		return entity.BidEntry{}, domain.NewError(errcodes.InsufficientFunds, "insufficient funds")
	}

	lot, ok := l.lots[sale.LotID]
	if !ok || lot.Status != value.LotPending {
		return entity.BidEntry{}, domain.NewError(errcodes.LotNotPending, "lot is not pending")
	}

	party.Balance -= sale.Amount

	winner, price := sale.PartyID, sale.Amount
	lot.Status = value.LotSold
	lot.WinningPartyID = &winner
	lot.FinalPrice = &price

	entry := entity.BidEntry{ID: uuid.New(), Amount: sale.Amount, PartyID: sale.PartyID, LotID: sale.LotID}
	l.bids = append(l.bids, entry)

	return entry, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.Event
}

func (n *recordingNotifier) Publish(_ context.Context, event entity.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
}

func (n *recordingNotifier) kinds() []entity.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()

	kinds := make([]entity.EventKind, 0, len(n.events))
	for _, e := range n.events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

func (n *recordingNotifier) last() entity.Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.events[len(n.events)-1]
}

type recordingAlerter struct {
	mu       sync.Mutex
	failures []entity.SettlementFailure
}

func (a *recordingAlerter) SettlementFailed(_ context.Context, failure entity.SettlementFailure) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.failures = append(a.failures, failure)

	return nil
}

func (a *recordingAlerter) all() []entity.SettlementFailure {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]entity.SettlementFailure(nil), a.failures...)
}

// storeWrite — запись движка в хранилище состояния.
type storeWrite struct {
	status value.AuctionStatus
	record *entity.AuctionRecord
}

// recordingStore пропускает вызовы в настоящее хранилище и запоминает записи.
type recordingStore struct {
	StateStore

	mu     sync.Mutex
	writes []storeWrite
}

func (s *recordingStore) Save(ctx context.Context, record entity.AuctionRecord) error {
	s.mu.Lock()
	s.writes = append(s.writes, storeWrite{record: &record})
	s.mu.Unlock()

	return s.StateStore.Save(ctx, record)
}

func (s *recordingStore) SetStatus(ctx context.Context, status value.AuctionStatus) error {
	s.mu.Lock()
	s.writes = append(s.writes, storeWrite{status: status})
	s.mu.Unlock()

	return s.StateStore.SetStatus(ctx, status)
}

func (s *recordingStore) lastWrites(n int) []storeWrite {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.writes) < n {
		return append([]storeWrite(nil), s.writes...)
	}

	return append([]storeWrite(nil), s.writes[len(s.writes)-n:]...)
}
