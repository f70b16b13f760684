package middlewarex

import (
	"net/http"

	"auction_house/pkg/contextx"
)

const headerNameTraceID = "X-Trace-Id"

func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := contextx.TraceID(r.Header.Get(headerNameTraceID))

		if traceID == "" {
			ctx, traceID = contextx.WithNewTraceID(ctx)
		} else {
			ctx = contextx.WithTraceID(ctx, traceID)
		}

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
