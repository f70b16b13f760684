package entity

import "github.com/google/uuid"

// EventKind — тип исходящего события для наблюдателей.
type EventKind string

const (
	EventStateSync   EventKind = "state_sync"
	EventTick        EventKind = "timer_update"
	EventBidAccepted EventKind = "bid_update"
	EventSold        EventKind = "auction_sold"
	EventUnsold      EventKind = "auction_unsold"
	EventError       EventKind = "error"
)

// Event публикуется без подтверждения доставки, не более одного раза.
type Event struct {
	Kind EventKind `json:"type"`
	Data any       `json:"data"`
}

// IsOutcome — события, завершающие торги по лоту.
func (e Event) IsOutcome() bool {
	switch e.Kind {
	case EventSold, EventUnsold, EventError:
		return true
	default:
		return false
	}
}

type TickData struct {
	Countdown int `json:"countdown"`
}

type BidAcceptedData struct {
	PartyID   uuid.UUID `json:"partyId"`
	Amount    int64     `json:"amount"`
	Countdown int       `json:"countdown"`
}

type SoldData struct {
	LotID    uuid.UUID `json:"lotId"`
	WinnerID uuid.UUID `json:"winnerId"`
	Amount   int64     `json:"amount"`
}

type UnsoldData struct {
	LotID uuid.UUID `json:"lotId"`
}

type ErrorData struct {
	LotID   *uuid.UUID `json:"lotId,omitempty"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
}

func StateSyncEvent(record AuctionRecord) Event {
	return Event{Kind: EventStateSync, Data: record}
}

func TickEvent(countdown int) Event {
	return Event{Kind: EventTick, Data: TickData{Countdown: countdown}}
}

func BidAcceptedEvent(partyID uuid.UUID, amount int64, countdown int) Event {
	return Event{Kind: EventBidAccepted, Data: BidAcceptedData{PartyID: partyID, Amount: amount, Countdown: countdown}}
}

func SoldEvent(sale Sale) Event {
	return Event{Kind: EventSold, Data: SoldData{LotID: sale.LotID, WinnerID: sale.PartyID, Amount: sale.Amount}}
}

func UnsoldEvent(lotID uuid.UUID) Event {
	return Event{Kind: EventUnsold, Data: UnsoldData{LotID: lotID}}
}

func ErrorEvent(lotID *uuid.UUID, code, message string) Event {
	return Event{Kind: EventError, Data: ErrorData{LotID: lotID, Code: code, Message: message}}
}

// SettlementFailure — сведения для ручного разбора неудавшегося расчёта.
type SettlementFailure struct {
	LotID   uuid.UUID  `json:"lotId"`
	PartyID *uuid.UUID `json:"partyId,omitempty"`
	Amount  int64      `json:"amount"`
	Code    string     `json:"code"`
	Reason  string     `json:"reason"`
}
