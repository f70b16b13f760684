package entity

import (
	"time"

	"github.com/google/uuid"
)

// BidEntry — запись журнала ставок. Создаётся только внутри успешной
// транзакции расчёта и больше не меняется.
type BidEntry struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	PartyID   uuid.UUID `json:"party_id"`
	LotID     uuid.UUID `json:"lot_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Sale — входные данные транзакции продажи лота.
type Sale struct {
	LotID   uuid.UUID
	PartyID uuid.UUID
	Amount  int64
}
