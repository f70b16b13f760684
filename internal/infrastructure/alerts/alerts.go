package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"auction_house/internal/domain/entity"
	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const (
	TypeSettlementFailed = "auction:settlement_failed"
	Queue                = "alerts"

	maxRetry    = 10
	taskTimeout = 30 * time.Second
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Alerter ставит задачу на уведомление операторов. Повторяется только
// доставка уведомления, сам расчёт не повторяется никогда.
type Alerter struct {
	client Enqueuer
}

func NewAlerter(client Enqueuer) *Alerter {
	return &Alerter{client: client}
}

func (a *Alerter) SettlementFailed(ctx context.Context, failure entity.SettlementFailure) error {
	task, err := NewSettlementFailedTask(failure)
	if err != nil {
		return err
	}

	info, err := a.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("settlement alert enqueued",
		logx.FieldTaskType, task.Type(),
		logx.FieldLotID, failure.LotID.String(),
		"task-id", info.ID,
	)

	return nil
}

func NewSettlementFailedTask(failure entity.SettlementFailure) (*asynq.Task, error) {
	payload, err := json.Marshal(failure)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeSettlementFailed,
		payload,
		asynq.Queue(Queue),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(taskTimeout),
	), nil
}

func ParseSettlementFailed(task *asynq.Task) (entity.SettlementFailure, error) {
	var failure entity.SettlementFailure
	if err := json.Unmarshal(task.Payload(), &failure); err != nil {
		return entity.SettlementFailure{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return failure, nil
}
