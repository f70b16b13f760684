package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/google/uuid"

	"auction_house/internal/domain/value"
	"auction_house/pkg/contextx"
	"auction_house/pkg/errcodes"
	"auction_house/pkg/httpx/reply"
	"auction_house/pkg/logx"
)

// Заголовки выставляет аутентифицирующий шлюз перед сервисом. Клиентские
// значения идентификатора участника в теле запроса игнорируются.
const (
	headerPartyID = "X-Party-Id"
	headerRole    = "X-Role"
)

type partyChecker interface {
	PartyExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type contextKeyIdentity struct{}

var errNoIdentity = errors.New("no identity in context")

func withIdentity(ctx context.Context, identity value.Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity{}, identity)
}

func identityFromContext(ctx context.Context) (value.Identity, error) {
	identity, ok := ctx.Value(contextKeyIdentity{}).(value.Identity)
	if !ok {
		return value.Identity{}, errNoIdentity
	}

	return identity, nil
}

// Identity проверяет роль и привязку к участнику и кладёт личность в контекст.
func Identity(parties partyChecker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identity, err := parseIdentity(ctx, r.Header, parties)
			if err != nil {
				if code, unavailable := unavailableCode(err); unavailable {
					reply.Unavailable(ctx, w, code, err)
					return
				}

				reply.Error(ctx, w, err)

				return
			}

			attrs := []any{slog.String(logx.FieldRole, identity.Role.String())}
			if identity.PartyID != uuid.Nil {
				attrs = append(attrs, slog.String(logx.FieldPartyID, identity.PartyID.String()))
			}

			ctx = contextx.WithLogger(ctx, logger(ctx).With(attrs...))
			ctx = withIdentity(ctx, identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseIdentity(ctx context.Context, header http.Header, parties partyChecker) (value.Identity, error) {
	rawRole := header.Get(headerRole)
	if rawRole == "" {
		return value.Identity{}, failure.NewUnauthorizedError(
			"missing role header",
			failure.WithCode(errcodes.Unauthorized),
			failure.WithDescription("authentication required"),
		)
	}

	role, err := value.ParseRole(rawRole)
	if err != nil {
		return value.Identity{}, failure.NewUnauthorizedError(
			err.Error(),
			failure.WithCode(errcodes.InvalidRole),
			failure.WithDescription("unknown role"),
		)
	}

	identity := value.Identity{Role: role}

	rawPartyID := strings.TrimSpace(header.Get(headerPartyID))
	if rawPartyID == "" {
		return identity, nil
	}

	partyID, err := uuid.Parse(rawPartyID)
	if err != nil {
		return value.Identity{}, failure.NewUnauthorizedError(
			err.Error(),
			failure.WithCode(errcodes.InvalidPartyID),
			failure.WithDescription("invalid party id"),
		)
	}

	exists, err := parties.PartyExists(ctx, partyID)
	if err != nil {
		return value.Identity{}, err
	}

	if !exists {
		return value.Identity{}, failure.NewUnauthorizedError(
			"party does not exist",
			failure.WithCode(errcodes.PartyNotLinked),
			failure.WithDescription("you are not linked to a valid party"),
		)
	}

	identity.PartyID = partyID

	return identity, nil
}

// AdminOnly отсекает не-администраторов до вызова обработчика.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, err := identityFromContext(ctx)
		if err != nil || !identity.IsAdmin() {
			reply.Error(ctx, w, failure.NewForbiddenError(
				"admin role required",
				failure.WithCode(errcodes.Forbidden),
				failure.WithDescription("admin privileges required"),
			))

			return
		}

		next.ServeHTTP(w, r)
	})
}
