package persistence_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/internal/infrastructure/persistence"
	"auction_house/pkg/dbtest"
	"auction_house/pkg/errcodes"
)

// Тесты ходят в настоящий Postgres: PG_TEST_DSN=postgres://... go test ./...
func openDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, dbtest.MigrateFromFile(db, "../../../migrations/0001_init.sql"))
	require.NoError(t, dbtest.Truncate(context.Background(), db, "bids", "lots", "parties"))

	return db
}

type fixture struct {
	lots        *persistence.LotRepository
	parties     *persistence.PartyRepository
	settlements *persistence.SettlementRepository
}

func newFixture(t *testing.T) fixture {
	db := openDB(t)

	return fixture{
		lots:        persistence.NewLotRepository(db),
		parties:     persistence.NewPartyRepository(db),
		settlements: persistence.NewSettlementRepository(db),
	}
}

func (f fixture) party(t *testing.T, balance int64) *entity.Party {
	t.Helper()

	party := &entity.Party{ID: uuid.New(), Name: "party-" + uuid.NewString(), Balance: balance}
	require.NoError(t, f.parties.Create(context.Background(), party))

	return party
}

func (f fixture) lot(t *testing.T, basePrice int64) *entity.Lot {
	t.Helper()

	lot := &entity.Lot{ID: uuid.New(), Name: "lot", Category: "batsman", BasePrice: basePrice, Status: value.LotPending}
	require.NoError(t, f.lots.Create(context.Background(), lot))

	return lot
}

func TestSettleSale(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	party := f.party(t, 1000)
	lot := f.lot(t, 200)

	entry, err := f.settlements.SettleSale(ctx, entity.Sale{LotID: lot.ID, PartyID: party.ID, Amount: 250})
	rq.NoError(err)
	rq.Equal(int64(250), entry.Amount)
	rq.Equal(lot.ID, entry.LotID)

	got, err := f.lots.GetByID(ctx, lot.ID)
	rq.NoError(err)
	rq.Equal(value.LotSold, got.Status)
	rq.Equal(party.ID, *got.WinningPartyID)
	rq.Equal(int64(250), *got.FinalPrice)

	winner, err := f.parties.GetByID(ctx, party.ID)
	rq.NoError(err)
	rq.Equal(int64(750), winner.Balance)

	bids, err := f.settlements.ListBids(ctx, lot.ID)
	rq.NoError(err)
	rq.Len(bids, 1)
	rq.Equal(entry.ID, bids[0].ID)

	// повторный расчёт по закрытому лоту откатывается целиком
	_, err = f.settlements.SettleSale(ctx, entity.Sale{LotID: lot.ID, PartyID: party.ID, Amount: 250})
	rq.True(domain.HasCode(err, errcodes.LotNotPending))

	winner, err = f.parties.GetByID(ctx, party.ID)
	rq.NoError(err)
	rq.Equal(int64(750), winner.Balance)
}

func TestSettleSaleInsufficientFunds(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	party := f.party(t, 100)
	lot := f.lot(t, 200)

	_, err := f.settlements.SettleSale(ctx, entity.Sale{LotID: lot.ID, PartyID: party.ID, Amount: 220})
	rq.True(domain.HasCode(err, errcodes.InsufficientFunds))

	got, err := f.lots.GetByID(ctx, lot.ID)
	rq.NoError(err)
	rq.Equal(value.LotPending, got.Status)
	rq.Nil(got.WinningPartyID)

	loser, err := f.parties.GetByID(ctx, party.ID)
	rq.NoError(err)
	rq.Equal(int64(100), loser.Balance)

	bids, err := f.settlements.ListBids(ctx, lot.ID)
	rq.NoError(err)
	rq.Empty(bids)
}

func TestSettleSaleRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	lot := f.lot(t, 200)
	party := f.party(t, 1000)

	tests := []struct {
		name string
		sale entity.Sale
		code string
	}{
		{name: "zero amount", sale: entity.Sale{LotID: lot.ID, PartyID: party.ID}, code: errcodes.InvalidFinalBid.String()},
		{name: "unknown party", sale: entity.Sale{LotID: lot.ID, PartyID: uuid.New(), Amount: 220}, code: errcodes.PartyNotFound.String()},
		{name: "unknown lot", sale: entity.Sale{LotID: uuid.New(), PartyID: party.ID, Amount: 220}, code: errcodes.LotNotPending.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			_, err := f.settlements.SettleSale(ctx, tt.sale)
			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tt.code, code.String())
		})
	}

	got, err := f.parties.GetByID(ctx, party.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), got.Balance)
}

func TestMarkUnsold(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	lot := f.lot(t, 300)

	rq.NoError(f.lots.MarkUnsold(ctx, lot.ID))

	got, err := f.lots.GetByID(ctx, lot.ID)
	rq.NoError(err)
	rq.Equal(value.LotUnsold, got.Status)

	rq.True(domain.HasCode(f.lots.MarkUnsold(ctx, lot.ID), errcodes.LotNotPending))
	rq.True(domain.HasCode(f.lots.MarkUnsold(ctx, uuid.New()), errcodes.LotNotFound))
}

func TestPartyRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	f := newFixture(t)

	party := f.party(t, 500)

	err := f.parties.Create(ctx, &entity.Party{ID: uuid.New(), Name: party.Name})
	rq.True(domain.HasCode(err, errcodes.PartyNameInUse))

	exists, err := f.parties.Exists(ctx, party.ID)
	rq.NoError(err)
	rq.True(exists)

	exists, err = f.parties.Exists(ctx, uuid.New())
	rq.NoError(err)
	rq.False(exists)

	_, err = f.parties.GetByID(ctx, uuid.New())
	rq.True(domain.HasCode(err, errcodes.PartyNotFound))
}
