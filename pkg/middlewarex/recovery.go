package middlewarex

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"auction_house/pkg/contextx"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/httpx/reply"
	"auction_house/pkg/logx"
)

type panicResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

// Recovery превращает панику обработчика в 500 с trace id в качестве supportId.
// Соединение websocket к этому моменту уже перехвачено, ответ в него не пишется.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			if isWebSocketUpgrade(r) {
				return
			}

			var supportID string
			if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
				supportID = traceID.String()
			}

			reply.JSON(ctx, w, http.StatusInternalServerError, panicResponse{
				Code:      string(errcodes.InternalServerError),
				Message:   "internal server error",
				SupportID: supportID,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
