package req

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"auction_house/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

func Read(r *http.Request, dest any) error {
	return decode(r.Context(), json.NewDecoder(r.Body).Decode, dest)
}

// Unmarshal проверяет сообщение, пришедшее не телом запроса, а, например,
// кадром websocket.
func Unmarshal(ctx context.Context, data []byte, dest any) error {
	return decode(ctx, func(v any) error { return json.Unmarshal(data, v) }, dest)
}

func decode(ctx context.Context, decodeFn func(any) error, dest any) error {
	if err := decodeFn(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(ctx, dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}
