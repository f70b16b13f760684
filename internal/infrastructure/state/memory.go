package state

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
)

// MemoryStore хранит запись аукциона в памяти процесса. Каждая операция
// выполняется под одним мьютексом, что даёт ту же атомарность, что и скрипт Redis.
type MemoryStore struct {
	mu       sync.Mutex
	record   entity.AuctionRecord
	schedule value.IncrementSchedule
}

func NewMemoryStore(schedule value.IncrementSchedule, countdown int) *MemoryStore {
	return &MemoryStore{
		record:   entity.IdleRecord(countdown),
		schedule: schedule,
	}
}

func (s *MemoryStore) Load(_ context.Context) (entity.AuctionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneRecord(s.record), nil
}

func (s *MemoryStore) Save(_ context.Context, record entity.AuctionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = cloneRecord(record)
	return nil
}

func (s *MemoryStore) SetStatus(_ context.Context, status value.AuctionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Status = status
	return nil
}

func (s *MemoryStore) AddCountdown(_ context.Context, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record.Countdown += delta
	return s.record.Countdown, nil
}

func (s *MemoryStore) AdmitBid(_ context.Context, partyID uuid.UUID, amount int64, countdown int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.record.IsRunning() || s.record.Countdown <= 0 {
		return false, nil
	}

	if !s.schedule.Admits(s.record.CurrentBid, amount) {
		return false, nil
	}

	leaderID := partyID
	s.record.CurrentBid = amount
	s.record.LeaderID = &leaderID
	s.record.Countdown = countdown

	return true, nil
}

func cloneRecord(r entity.AuctionRecord) entity.AuctionRecord {
	out := r
	if r.ActiveLotID != nil {
		id := *r.ActiveLotID
		out.ActiveLotID = &id
	}
	if r.LeaderID != nil {
		id := *r.LeaderID
		out.LeaderID = &id
	}
	return out
}
