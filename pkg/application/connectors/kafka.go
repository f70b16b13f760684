package connectors

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"auction_house/pkg/logx"
)

type Kafka struct {
	value        *kafka.Writer
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	init         sync.Once
}

// Writer отдаёт асинхронного писателя: публикация событий аукциона не должна
// задерживать цикл отсчёта. Ошибки доставки уходят в лог через zap.
func (k *Kafka) Writer(ctx context.Context) *kafka.Writer {
	k.init.Do(func() {
		sugar := zap.NewExample().Sugar().Named("kafka")

		k.value = &kafka.Writer{
			//nolint:exhaustruct
			Addr:         kafka.TCP(k.Brokers...),
			Topic:        k.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			BatchTimeout: k.BatchTimeout,
			ErrorLogger:  kafka.LoggerFunc(sugar.Errorf),
		}

		logger(ctx).Info(
			"kafka writer created",
			slog.String("brokers", strings.Join(k.Brokers, ",")),
			slog.String("topic", k.Topic),
		)
	})

	return k.value
}

func (k *Kafka) Close(ctx context.Context) {
	if k.value == nil {
		return
	}

	if err := k.value.Close(); err != nil {
		logger(ctx).Error("kafkaWriter.Close", logx.Error(err))
	}

	logger(ctx).Info("kafka writer closed", slog.String("topic", k.Topic))
}
