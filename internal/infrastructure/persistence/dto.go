package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
)

// lotSchema: внутренняя структура для маппинга строки таблицы lots.
type lotSchema struct {
	ID             uuid.UUID           `db:"id"`
	Name           string              `db:"name"`
	Category       string              `db:"category"`
	BasePrice      decimal.Decimal     `db:"base_price"`
	Status         string              `db:"status"`
	WinningPartyID uuid.NullUUID       `db:"winning_party_id"`
	FinalPrice     decimal.NullDecimal `db:"final_price"`
}

func fromLot(l *entity.Lot) lotSchema {
	schema := lotSchema{
		ID:        l.ID,
		Name:      l.Name,
		Category:  l.Category,
		BasePrice: decimal.NewFromInt(l.BasePrice),
		Status:    string(l.Status),
	}

	if l.WinningPartyID != nil {
		schema.WinningPartyID = uuid.NullUUID{UUID: *l.WinningPartyID, Valid: true}
	}

	if l.FinalPrice != nil {
		schema.FinalPrice = decimal.NewNullDecimal(decimal.NewFromInt(*l.FinalPrice))
	}

	return schema
}

func (s *lotSchema) toDomain() (*entity.Lot, error) {
	basePrice, err := pointsFromDecimal(s.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("base_price: %w", err)
	}

	lot := &entity.Lot{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		BasePrice: basePrice,
		Status:    value.LotStatus(s.Status),
	}

	if s.WinningPartyID.Valid {
		id := s.WinningPartyID.UUID
		lot.WinningPartyID = &id
	}

	if s.FinalPrice.Valid {
		finalPrice, err := pointsFromDecimal(s.FinalPrice.Decimal)
		if err != nil {
			return nil, fmt.Errorf("final_price: %w", err)
		}
		lot.FinalPrice = &finalPrice
	}

	return lot, nil
}

// partySchema: представление таблицы parties.
type partySchema struct {
	ID      uuid.UUID       `db:"id"`
	Name    string          `db:"name"`
	Balance decimal.Decimal `db:"balance"`
}

func fromParty(p *entity.Party) partySchema {
	return partySchema{
		ID:      p.ID,
		Name:    p.Name,
		Balance: decimal.NewFromInt(p.Balance),
	}
}

func (s *partySchema) toDomain() (*entity.Party, error) {
	balance, err := pointsFromDecimal(s.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	return &entity.Party{
		ID:      s.ID,
		Name:    s.Name,
		Balance: balance,
	}, nil
}

// bidSchema: строка журнала ставок.
type bidSchema struct {
	ID        uuid.UUID       `db:"id"`
	Amount    decimal.Decimal `db:"amount"`
	PartyID   uuid.UUID       `db:"party_id"`
	LotID     uuid.UUID       `db:"lot_id"`
	CreatedAt time.Time       `db:"created_at"`
}

func (s *bidSchema) toDomain() (entity.BidEntry, error) {
	amount, err := pointsFromDecimal(s.Amount)
	if err != nil {
		return entity.BidEntry{}, fmt.Errorf("amount: %w", err)
	}

	return entity.BidEntry{
		ID:        s.ID,
		Amount:    amount,
		PartyID:   s.PartyID,
		LotID:     s.LotID,
		CreatedAt: s.CreatedAt,
	}, nil
}

// pointsFromDecimal переводит NUMERIC в целые очки; дробная часть считается признаком
// повреждённых данных.
func pointsFromDecimal(d decimal.Decimal) (int64, error) {
	if !d.IsInteger() {
		return 0, fmt.Errorf("fractional amount %s", d.String())
	}
	return d.IntPart(), nil
}
