package eventlog

import (
	"context"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"auction_house/internal/domain/entity"
	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

// Все события аукциона идут с одним ключом: в одной партиции сохраняется
// порядок ставок и итога.
const messageKey = "auction"

const (
	headerEventType = "event-type"
	headerTraceID   = "trace-id"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// record: формат сообщения в топике.
type record struct {
	Type       entity.EventKind `json:"type"`
	Data       any              `json:"data"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// KafkaPublisher пишет события ставок и итогов в поток для аналитики.
// Тики отсчёта не публикуются.
type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		now:    time.Now,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entity.Event) {
	if event.Kind == entity.EventTick {
		return
	}

	value, err := json.Marshal(record{
		Type:       event.Kind,
		Data:       event.Data,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		logger(ctx).Error("marshal event", slog.String(logx.FieldEvent, string(event.Kind)), logx.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(messageKey),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Kind)},
		},
	}

	if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
		msg.Headers = append(msg.Headers, kafka.Header{Key: headerTraceID, Value: []byte(traceID.String())})
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		logger(ctx).Error("kafka write", slog.String(logx.FieldEvent, string(event.Kind)), logx.Error(err))
	}
}
