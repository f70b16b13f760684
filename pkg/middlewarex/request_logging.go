package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"auction_house/pkg/logx"
)

// Заголовки личности от проксирующего края. Сами значения проверяет
// middleware личности сервера, здесь они только попадают в журнал.
const (
	headerRole    = "X-Role"
	headerPartyID = "X-Party-Id"
)

func RequestLogging(
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			attrs := []any{
				slog.String(logx.FieldRole, r.Header.Get(headerRole)),
				slog.String(logx.FieldPartyID, r.Header.Get(headerPartyID)),
			}

			if isWebSocketUpgrade(r) {
				// У рукопожатия нет тела, дамп заголовков ничего не добавит.
				logger(ctx).Info("websocket handshake", attrs...)
				next.ServeHTTP(w, r)

				return
			}

			dumpBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")

			dump, err := httputil.DumpRequest(r, dumpBody)
			if err != nil {
				attrs = append(attrs, logx.Error(err))
			}

			attrs = append(attrs, slog.String(logx.FieldRequestBody, maskAndTruncate(sensitiveDataMasker, dump, logFieldMaxLen)))

			logger(ctx).Info(logx.FieldHTTPRequest, attrs...)

			next.ServeHTTP(w, r)
		})
	}
}

// maskAndTruncate маскирует до обрезки: иначе секрет на границе обрезки
// уходит в журнал не замаскированным.
func maskAndTruncate(masker logx.SensitiveDataMaskerInterface, dump []byte, maxLen int) string {
	dump = masker.Mask(dump)

	if maxLen > 0 && len(dump) > maxLen {
		dump = dump[:maxLen]
	}

	return string(dump)
}

// isWebSocketUpgrade отличает рукопожатие websocket: тело у такого запроса
// отсутствует, а ответ живёт до закрытия соединения.
func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
