package auction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/contextx"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
	"auction_house/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// StateStore — быстрое хранилище единственной записи аукциона. AddCountdown и
// AdmitBid обязаны быть атомарными относительно всех остальных вызовов.
type StateStore interface {
	Load(ctx context.Context) (entity.AuctionRecord, error)
	Save(ctx context.Context, record entity.AuctionRecord) error
	SetStatus(ctx context.Context, status value.AuctionStatus) error
	AddCountdown(ctx context.Context, delta int) (int, error)
	AdmitBid(ctx context.Context, partyID uuid.UUID, amount int64, countdown int) (bool, error)
}

type LotRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	MarkUnsold(ctx context.Context, id uuid.UUID) error
}

// SettlementRepository проводит продажу одной транзакцией: списание, закрытие
// лота и запись в журнал либо применяются вместе, либо не применяются вовсе.
type SettlementRepository interface {
	SettleSale(ctx context.Context, sale entity.Sale) (entity.BidEntry, error)
}

// Notifier доставляет события без подтверждения.
type Notifier interface {
	Publish(ctx context.Context, event entity.Event)
}

// Alerter сообщает операторам о расчёте, который нужно разобрать вручную.
type Alerter interface {
	SettlementFailed(ctx context.Context, failure entity.SettlementFailure) error
}

// Timer — отменяемый периодический цикл. Stop возвращается только после
// того, как цикл завершился.
type Timer interface {
	Start(ctx context.Context, tick func(ctx context.Context) bool)
	Stop()
}

type phase int

const (
	phaseIdle phase = iota
	phaseStarting
	phaseRunning
	phaseSettling
)

// Engine управляет жизненным циклом одного лота: IDLE → RUNNING → SETTLING → IDLE.
// Запись аукциона меняет только Engine.
type Engine struct {
	state       StateStore
	lots        LotRepository
	settlements SettlementRepository
	notifier    Notifier
	alerter     Alerter
	timer       Timer
	countdown   int

	mu    sync.Mutex
	phase phase
}

func NewEngine(
	state StateStore,
	lots LotRepository,
	settlements SettlementRepository,
	notifier Notifier,
	timer Timer,
) *Engine {
	return &Engine{
		state:       state,
		lots:        lots,
		settlements: settlements,
		notifier:    notifier,
		timer:       timer,
		countdown:   entity.DefaultCountdown,
	}
}

func (e *Engine) WithCountdown(seconds int) *Engine {
	if seconds > 0 {
		e.countdown = seconds
	}
	return e
}

func (e *Engine) WithAlerter(alerter Alerter) *Engine {
	e.alerter = alerter
	return e
}

// Reset приводит запись к состоянию по умолчанию. Вызывается при старте
// процесса: цикл прошлого процесса мёртв, и его лот остаётся PENDING.
func (e *Engine) Reset(ctx context.Context) error {
	e.timer.Stop()

	record, err := e.state.Load(ctx)
	if err != nil {
		return err
	}

	if record.IsRunning() && record.ActiveLotID != nil {
		logger(ctx).Warn("abandoning lot left running by previous process",
			logx.FieldLotID, record.ActiveLotID.String(),
			logx.FieldAmount, record.CurrentBid,
		)
	}

	if err = e.state.Save(ctx, entity.IdleRecord(e.countdown)); err != nil {
		return err
	}

	e.setPhase(phaseIdle)

	return nil
}

// StartLot открывает торги по лоту. Пока идёт другой лот, вызов отклоняется,
// а не ставится в очередь.
func (e *Engine) StartLot(ctx context.Context, caller value.Identity, lotID uuid.UUID) error {
	if !caller.IsAdmin() {
		return domain.NewError(errcodes.Unauthorized, "only an admin can start a lot")
	}

	e.mu.Lock()
	if e.phase != phaseIdle {
		e.mu.Unlock()
		return domain.NewError(errcodes.AuctionAlreadyRunning, "another lot is being auctioned")
	}
	e.phase = phaseStarting
	e.mu.Unlock()

	started := false
	defer func() {
		if !started {
			e.setPhase(phaseIdle)
		}
	}()

	lot, err := e.lots.GetByID(ctx, lotID)
	if err != nil {
		return err
	}

	if !lot.IsPending() {
		return domain.NewError(errcodes.LotNotPending, "lot is already closed")
	}

	e.timer.Stop()

	record := entity.RunningRecord(*lot, e.countdown)
	if err = e.state.Save(ctx, record); err != nil {
		return err
	}

	e.setPhase(phaseRunning)
	started = true

	metrics.ObserveLotStarted()
	logger(ctx).Info("lot started",
		logx.FieldLotID, lotID.String(),
		logx.FieldAmount, lot.BasePrice,
		logx.FieldCountdown, e.countdown,
	)

	e.notifier.Publish(ctx, entity.StateSyncEvent(record))

	loopCtx, traceID := contextx.WithNewTraceID(context.WithoutCancel(ctx))
	loopCtx = contextx.WithLogger(loopCtx, logger(ctx).With(
		logx.Stringer(logx.FieldTraceID, traceID),
		slog.String(logx.FieldLotID, lotID.String()),
	))

	e.timer.Start(loopCtx, e.tick)

	return nil
}

// PlaceBid возвращает false без ошибки, если ставка ниже минимального шага
// или торги не идут. Участник берётся только из проверенной личности.
func (e *Engine) PlaceBid(ctx context.Context, caller value.Identity, amount int64) (bool, error) {
	if caller.Role != value.RoleBidder {
		return false, domain.NewError(errcodes.Unauthorized, "only bidders can place bids")
	}

	if caller.PartyID == uuid.Nil {
		return false, domain.NewError(errcodes.PartyNotLinked, "caller is not linked to a party")
	}

	if amount <= 0 {
		metrics.ObserveBid(false)
		return false, nil
	}

	if !value.BidAmountInRange(amount) {
		return false, domain.NewError(errcodes.InvalidBidAmount, "bid amount exceeds the allowed maximum")
	}

	admitted, err := e.state.AdmitBid(ctx, caller.PartyID, amount, e.countdown)
	if err != nil {
		return false, err
	}

	metrics.ObserveBid(admitted)

	if !admitted {
		logger(ctx).Debug("bid rejected", logx.FieldPartyID, caller.PartyID.String(), logx.FieldAmount, amount)
		return false, nil
	}

	logger(ctx).Info("bid admitted", logx.FieldPartyID, caller.PartyID.String(), logx.FieldAmount, amount)

	e.notifier.Publish(ctx, entity.BidAcceptedEvent(caller.PartyID, amount, e.countdown))

	return true, nil
}

// Snapshot — полное состояние для наблюдателей, подключившихся посреди торгов.
func (e *Engine) Snapshot(ctx context.Context) (entity.AuctionRecord, error) {
	return e.state.Load(ctx)
}

// Close останавливает цикл отсчёта. Текущий лот остаётся PENDING.
func (e *Engine) Close() {
	e.timer.Stop()
}

func (e *Engine) setPhase(p phase) {
	e.mu.Lock()
	e.phase = p
	e.mu.Unlock()
}
