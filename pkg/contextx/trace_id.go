package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

// WithNewTraceID is used for work that does not start from an HTTP request:
// socket messages and countdown loops.
func WithNewTraceID(ctx context.Context) (context.Context, TraceID) {
	traceID := NewTraceID()

	return WithTraceID(ctx, traceID), traceID
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
