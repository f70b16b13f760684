package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
)

type PartyRepository struct {
	db *sqlx.DB
}

func NewPartyRepository(db *sqlx.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

func (r *PartyRepository) Create(ctx context.Context, party *entity.Party) error {
	query := `
		INSERT INTO parties (id, name, balance)
		VALUES (:id, :name, :balance)`

	if _, err := r.db.NamedExecContext(ctx, query, fromParty(party)); err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(errcodes.PartyNameInUse, "party name is already taken")
		}
		return storeError("insert party", err)
	}

	return nil
}

func (r *PartyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Party, error) {
	query := `SELECT id, name, balance FROM parties WHERE id = $1`

	var schema partySchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.PartyNotFound, "party not found")
		}
		return nil, storeError("select party", err)
	}

	party, err := schema.toDomain()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "corrupt party row")
	}

	return party, nil
}

func (r *PartyRepository) List(ctx context.Context, limit, offset int) ([]*entity.Party, error) {
	query := `
		SELECT id, name, balance
		FROM parties
		ORDER BY name
		LIMIT $1 OFFSET $2`

	var rows []partySchema
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, storeError("select parties", err)
	}

	parties := make([]*entity.Party, 0, len(rows))
	for i := range rows {
		party, err := rows[i].toDomain()
		if err != nil {
			logger(ctx).Warn("skip corrupt party row", logx.FieldPartyID, rows[i].ID.String(), logx.Error(err))
			continue
		}
		parties = append(parties, party)
	}

	return parties, nil
}

func (r *PartyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = $1)`, id); err != nil {
		return false, storeError("check party", err)
	}

	return exists, nil
}
