package entity

import (
	"github.com/google/uuid"

	"auction_house/internal/domain/value"
)

// Lot — предмет торгов. Переходы PENDING→SOLD и PENDING→UNSOLD выполняет
// только расчёт по итогам аукциона.
type Lot struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	BasePrice      int64           `json:"base_price"`
	Status         value.LotStatus `json:"status"`
	WinningPartyID *uuid.UUID      `json:"winning_party_id,omitempty"`
	FinalPrice     *int64          `json:"final_price,omitempty"`
}

func (l *Lot) IsPending() bool {
	return l.Status == value.LotPending
}
