package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"auction_house/internal/domain/entity"
	"auction_house/internal/infrastructure/alerts"
	"auction_house/pkg/logx"
)

type OperatorNotifier interface {
	SendSettlementFailure(ctx context.Context, failure entity.SettlementFailure) error
}

// SettlementAlert доставляет операторам сведения о неудавшемся расчёте.
// Ошибка отправки возвращается asynq и приводит к повтору задачи.
type SettlementAlert struct {
	notifier OperatorNotifier
}

func NewSettlementAlert(notifier OperatorNotifier) *SettlementAlert {
	return &SettlementAlert{notifier: notifier}
}

func (w *SettlementAlert) Handle(ctx context.Context, task *asynq.Task) error {
	failure, err := alerts.ParseSettlementFailed(task)
	if err != nil {
		logger(ctx).Error("drop malformed alert", logx.FieldTaskType, task.Type(), logx.Error(err))
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	}

	if err = w.notifier.SendSettlementFailure(ctx, failure); err != nil {
		return fmt.Errorf("notifier.SendSettlementFailure: %w", err)
	}

	logger(ctx).Info("settlement alert delivered", logx.FieldLotID, failure.LotID.String())

	return nil
}
