package middlewarex

import (
	"log/slog"
	"net/http"
	"strings"

	"auction_house/pkg/contextx"
	"auction_house/pkg/logx"
)

// Logger должен идти после TraceID. За проксирующим краем RemoteAddr указывает
// на сам край, поэтому при наличии берётся первый адрес из X-Forwarded-For.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		attrs := []any{
			logx.Stringer(logx.FieldURL, r.URL),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldIP, clientIP(r)),
		}

		if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
			attrs = append(attrs, logx.Stringer(logx.FieldTraceID, traceID))
		}

		ctx = contextx.WithLogger(ctx, logger(ctx).With(attrs...))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	return r.RemoteAddr
}
