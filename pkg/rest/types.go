// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Lot Лот
type Lot struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	BasePrice      int64   `json:"basePrice"`
	Status         string  `json:"status"`
	WinningPartyID *string `json:"winningPartyId,omitempty"`
	FinalPrice     *int64  `json:"finalPrice,omitempty"`
}

// CreateLotRequest Запрос на создание лота
type CreateLotRequest struct {
	Name      string `json:"name" validate:"required,max=128"`
	Category  string `json:"category" validate:"required,max=64"`
	BasePrice int64  `json:"basePrice" validate:"gt=0,lte=999999999999999"`
}

// Party Участник торгов (команда)
type Party struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

// CreatePartyRequest Запрос на создание участника
type CreatePartyRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Balance int64  `json:"balance" validate:"gte=0"`
}

// BidEntry Запись журнала ставок лота
type BidEntry struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount"`
	PartyID   string    `json:"partyId"`
	LotID     string    `json:"lotId"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuctionState Снимок состояния аукциона
type AuctionState struct {
	Status      string  `json:"status"`
	ActiveLotID *string `json:"activeLotId"`
	CurrentBid  int64   `json:"currentBid"`
	LeaderID    *string `json:"leaderId"`
	Countdown   int     `json:"countdown"`
}

// PlaceBidRequest Ставка. Идентификатор участника берётся из сессии, а не из тела.
// Верхняя граница совпадает с value.MaxBidAmount.
type PlaceBidRequest struct {
	Amount int64 `json:"amount" validate:"gt=0,lte=999999999999999"`
}

// PlaceBidResponse Результат ставки
type PlaceBidResponse struct {
	Admitted bool  `json:"admitted"`
	Amount   int64 `json:"amount"`
}

// SocketMessage Входящее сообщение websocket-шлюза
type SocketMessage struct {
	Type   string `json:"type" validate:"required,oneof=place_bid admin_start_auction snapshot"`
	Amount int64  `json:"amount,omitempty"`
	LotID  string `json:"lotId,omitempty"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
