package entity

import (
	"github.com/google/uuid"

	"auction_house/internal/domain/value"
)

const DefaultCountdown = 10

// AuctionRecord — единственная изменяемая запись аукциона в быстром хранилище.
// LeaderID пуст тогда и только тогда, когда по активному лоту не принято ни одной ставки.
type AuctionRecord struct {
	Status      value.AuctionStatus `json:"status"`
	ActiveLotID *uuid.UUID          `json:"activeLotId"`
	CurrentBid  int64               `json:"currentBid"`
	LeaderID    *uuid.UUID          `json:"leaderId"`
	Countdown   int                 `json:"countdown"`
}

// IdleRecord — запись по умолчанию: при старте процесса и после расчёта.
func IdleRecord(countdown int) AuctionRecord {
	return AuctionRecord{
		Status:    value.AuctionIdle,
		Countdown: countdown,
	}
}

// RunningRecord — начальное состояние торгов по лоту.
func RunningRecord(lot Lot, countdown int) AuctionRecord {
	lotID := lot.ID

	return AuctionRecord{
		Status:      value.AuctionRunning,
		ActiveLotID: &lotID,
		CurrentBid:  lot.BasePrice,
		Countdown:   countdown,
	}
}

func (r AuctionRecord) HasLeader() bool {
	return r.LeaderID != nil && *r.LeaderID != uuid.Nil
}

func (r AuctionRecord) IsRunning() bool {
	return r.Status == value.AuctionRunning
}
