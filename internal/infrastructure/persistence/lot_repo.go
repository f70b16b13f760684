package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
)

type LotRepository struct {
	db *sqlx.DB
}

func NewLotRepository(db *sqlx.DB) *LotRepository {
	return &LotRepository{db: db}
}

// Create сохраняет новый лот в статусе PENDING.
func (r *LotRepository) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, name, category, base_price, status)
		VALUES (:id, :name, :category, :base_price, :status)`

	if _, err := r.db.NamedExecContext(ctx, query, fromLot(lot)); err != nil {
		return storeError("insert lot", err)
	}

	return nil
}

func (r *LotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	query := `
		SELECT id, name, category, base_price, status, winning_party_id, final_price
		FROM lots
		WHERE id = $1`

	var schema lotSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.LotNotFound, "lot not found")
		}
		return nil, storeError("select lot", err)
	}

	lot, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "corrupt lot row")
	}

	return lot, nil
}

// List возвращает лоты в порядке создания. Пустой статус означает без фильтра.
func (r *LotRepository) List(
	ctx context.Context,
	status value.LotStatus,
	limit, offset int,
) ([]*entity.Lot, error) {
	query := `
		SELECT id, name, category, base_price, status, winning_party_id, final_price
		FROM lots
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	var rows []lotSchema
	if err := r.db.SelectContext(ctx, &rows, query, string(status), limit, offset); err != nil {
		return nil, storeError("select lots", err)
	}

	lots := make([]*entity.Lot, 0, len(rows))
	for i := range rows {
		lot, err := rows[i].toDomain()
		if err != nil {
			logger(ctx).Warn("skip corrupt lot row", logx.FieldLotID, rows[i].ID.String(), logx.Error(err))
			continue
		}
		lots = append(lots, lot)
	}

	return lots, nil
}

// MarkUnsold закрывает лот без победителя. Переход разрешён только из PENDING.
func (r *LotRepository) MarkUnsold(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE lots
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`

	res, err := r.db.ExecContext(ctx, query, id, string(value.LotUnsold), string(value.LotPending))
	if err != nil {
		return storeError("update lot status", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeError("rows affected", err)
	}

	if affected == 0 {
		if _, err = r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.NewError(errcodes.LotNotPending, "lot is already closed")
	}

	return nil
}
