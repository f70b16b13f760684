package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"auction_house/internal/domain/entity"
	"auction_house/internal/infrastructure/alerts"
	"auction_house/internal/worker"
)

type fakeOperatorNotifier struct {
	got []entity.SettlementFailure
	err error
}

func (f *fakeOperatorNotifier) SendSettlementFailure(_ context.Context, failure entity.SettlementFailure) error {
	f.got = append(f.got, failure)
	return f.err
}

func TestSettlementAlertHandle(t *testing.T) {
	failure := entity.SettlementFailure{LotID: uuid.New(), Amount: 300, Code: "InsufficientFunds"}

	validTask, err := alerts.NewSettlementFailedTask(failure)
	require.NoError(t, err)

	tests := []struct {
		name      string
		task      *asynq.Task
		sendErr   error
		wantErr   bool
		skipRetry bool
		delivered int
	}{
		{name: "delivered", task: validTask, delivered: 1},
		{name: "send failure is retried", task: validTask, sendErr: errors.New("timeout"), wantErr: true, delivered: 1},
		{
			name:      "malformed payload is not retried",
			task:      asynq.NewTask(alerts.TypeSettlementFailed, []byte("not json")),
			wantErr:   true,
			skipRetry: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			n := &fakeOperatorNotifier{err: tt.sendErr}
			err := worker.NewSettlementAlert(n).Handle(context.Background(), tt.task)

			if !tt.wantErr {
				rq.NoError(err)
			} else {
				rq.Error(err)
			}

			rq.Equal(tt.skipRetry, errors.Is(err, asynq.SkipRetry))
			rq.Len(n.got, tt.delivered)

			if tt.delivered > 0 {
				rq.Equal(failure, n.got[0])
			}
		})
	}
}
