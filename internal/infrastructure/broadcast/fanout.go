package broadcast

import (
	"context"

	"auction_house/internal/domain/entity"
)

type Sink interface {
	Publish(ctx context.Context, event entity.Event)
}

// Fanout передаёт каждое событие всем приёмникам по очереди. Приёмники
// обязаны не блокироваться: цикл отсчёта ждёт возврата Publish.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Publish(ctx context.Context, event entity.Event) {
	for _, s := range f.sinks {
		s.Publish(ctx, event)
	}
}
