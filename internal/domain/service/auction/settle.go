package auction

import (
	"context"

	"auction_house/internal/domain"
	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/logx"
	"auction_house/pkg/metrics"
)

// tick — одно уменьшение отсчёта. false останавливает цикл.
func (e *Engine) tick(ctx context.Context) bool {
	remaining, err := e.state.AddCountdown(ctx, -1)
	if err != nil {
		// Пропускаем тик: следующий повторит попытку.
		logger(ctx).Error("countdown tick failed", logx.Error(err))
		return true
	}

	metrics.ObserveTick()

	if remaining > 0 {
		e.notifier.Publish(ctx, entity.TickEvent(remaining))
		return true
	}

	e.settle(ctx)

	return false
}

// settle закрывает лот ровно один раз и всегда возвращает запись в IDLE.
// Неудачный расчёт не повторяется: лот остаётся PENDING для ручного разбора.
func (e *Engine) settle(ctx context.Context) {
	e.setPhase(phaseSettling)
	defer e.finish(ctx)

	record, err := e.state.Load(ctx)
	if err != nil {
		logger(ctx).Error("load final auction state", logx.Error(err))
		metrics.ObserveSettlement(metrics.SettlementFailed)
		e.notifier.Publish(ctx, entity.ErrorEvent(nil, codeOf(err), "auction state unavailable at close"))

		return
	}

	if record.ActiveLotID == nil {
		logger(ctx).Warn("countdown finished without an active lot")
		return
	}

	lotID := *record.ActiveLotID

	if !record.HasLeader() {
		if err = e.lots.MarkUnsold(ctx, lotID); err != nil {
			e.fail(ctx, entity.SettlementFailure{
				LotID:  lotID,
				Code:   codeOf(err),
				Reason: err.Error(),
			})

			return
		}

		metrics.ObserveSettlement(metrics.SettlementUnsold)
		logger(ctx).Info("lot unsold", logx.FieldLotID, lotID.String())
		e.notifier.Publish(ctx, entity.UnsoldEvent(lotID))

		return
	}

	leaderID := *record.LeaderID

	if record.CurrentBid <= 0 {
		e.fail(ctx, entity.SettlementFailure{
			LotID:   lotID,
			PartyID: &leaderID,
			Amount:  record.CurrentBid,
			Code:    errcodes.InvalidFinalBid.String(),
			Reason:  "final bid must be positive",
		})

		return
	}

	sale := entity.Sale{LotID: lotID, PartyID: leaderID, Amount: record.CurrentBid}

	if _, err = e.settlements.SettleSale(ctx, sale); err != nil {
		e.fail(ctx, entity.SettlementFailure{
			LotID:   lotID,
			PartyID: &leaderID,
			Amount:  sale.Amount,
			Code:    codeOf(err),
			Reason:  err.Error(),
		})

		return
	}

	metrics.ObserveSettlement(metrics.SettlementSold)
	logger(ctx).Info("lot sold",
		logx.FieldLotID, lotID.String(),
		logx.FieldPartyID, leaderID.String(),
		logx.FieldAmount, sale.Amount,
	)
	e.notifier.Publish(ctx, entity.SoldEvent(sale))
}

func (e *Engine) fail(ctx context.Context, failure entity.SettlementFailure) {
	metrics.ObserveSettlement(metrics.SettlementFailed)
	logger(ctx).Error("settlement failed",
		logx.FieldLotID, failure.LotID.String(),
		logx.FieldAmount, failure.Amount,
		"code", failure.Code,
		"reason", failure.Reason,
	)

	lotID := failure.LotID
	e.notifier.Publish(ctx, entity.ErrorEvent(&lotID, failure.Code, failure.Reason))

	if e.alerter == nil {
		return
	}

	if err := e.alerter.SettlementFailed(ctx, failure); err != nil {
		logger(ctx).Error("enqueue settlement alert", logx.Error(err))
	}
}

// finish: сначала FINISHED для тех, кто читает запись посреди перехода,
// затем сброс к IDLE.
func (e *Engine) finish(ctx context.Context) {
	if err := e.state.SetStatus(ctx, value.AuctionFinished); err != nil {
		logger(ctx).Error("mark auction finished", logx.Error(err))
	}

	if err := e.state.Save(ctx, entity.IdleRecord(e.countdown)); err != nil {
		logger(ctx).Error("reset auction state", logx.Error(err))
	}

	e.setPhase(phaseIdle)
}

func codeOf(err error) string {
	if code, ok := domain.GetCode(err); ok {
		return code.String()
	}
	return errcodes.InternalServerError.String()
}
