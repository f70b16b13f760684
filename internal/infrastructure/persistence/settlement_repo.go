package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
)

type SettlementRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db, now: time.Now}
}

// SettleSale одной транзакцией списывает сумму с победителя, закрывает лот как
// SOLD и пишет строку в журнал ставок. Любая ошибка откатывает всё целиком.
func (r *SettlementRepository) SettleSale(ctx context.Context, sale entity.Sale) (entity.BidEntry, error) {
	if sale.Amount <= 0 {
		return entity.BidEntry{}, domain.NewError(errcodes.InvalidFinalBid, "final bid must be positive")
	}

	amount := decimal.NewFromInt(sale.Amount)
	row := bidSchema{
		ID:        uuid.New(),
		Amount:    amount,
		PartyID:   sale.PartyID,
		LotID:     sale.LotID,
		CreatedAt: r.now().UTC(),
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var balance decimal.Decimal
		err := tx.GetContext(ctx, &balance, `
			UPDATE parties
			SET balance = balance - $2
			WHERE id = $1
			RETURNING balance`, sale.PartyID, amount)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewError(errcodes.PartyNotFound, "winning party not found")
			}
			return storeError("debit party", err)
		}

		if balance.IsNegative() {
			return domain.NewError(errcodes.InsufficientFunds, "insufficient funds")
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE lots
			SET status = $2, winning_party_id = $3, final_price = $4, updated_at = now()
			WHERE id = $1 AND status = $5`,
			sale.LotID, string(value.LotSold), sale.PartyID, amount, string(value.LotPending))
		if err != nil {
			return storeError("close lot", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return storeError("rows affected", err)
		}
		if affected == 0 {
			return domain.NewError(errcodes.LotNotPending, "lot is not pending")
		}

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO bids (id, amount, party_id, lot_id, created_at)
			VALUES (:id, :amount, :party_id, :lot_id, :created_at)`, row)
		if err != nil {
			return storeError("insert bid", err)
		}

		return nil
	})
	if err != nil {
		return entity.BidEntry{}, err
	}

	logger(ctx).Info("sale settled",
		logx.FieldLotID, sale.LotID.String(),
		logx.FieldPartyID, sale.PartyID.String(),
		logx.FieldAmount, sale.Amount,
	)

	return row.toDomain()
}

// ListBids возвращает журнал ставок по лоту.
func (r *SettlementRepository) ListBids(ctx context.Context, lotID uuid.UUID) ([]entity.BidEntry, error) {
	var rows []bidSchema
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, amount, party_id, lot_id, created_at
		FROM bids
		WHERE lot_id = $1
		ORDER BY created_at`, lotID)
	if err != nil {
		return nil, storeError("select bids", err)
	}

	bids := make([]entity.BidEntry, 0, len(rows))
	for i := range rows {
		bid, err := rows[i].toDomain()
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "corrupt bid row")
		}
		bids = append(bids, bid)
	}

	return bids, nil
}
