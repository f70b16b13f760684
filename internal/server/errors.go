package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"auction_house/internal/domain"
	"auction_house/pkg/errcodes"
)

// toFailure переводит доменную ошибку в транспортную: по классу failure
// reply выбирает HTTP-статус. Прочие ошибки проходят как есть.
func toFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	opts := []failure.Option{
		failure.WithCode(code),
		failure.WithDescription(descriptionOf(err)),
	}

	switch code {
	case errcodes.Unauthorized, errcodes.PartyNotLinked, errcodes.InvalidRole, errcodes.InvalidPartyID:
		return failure.NewUnauthorizedError(err.Error(), opts...)
	case errcodes.Forbidden:
		return failure.NewForbiddenError(err.Error(), opts...)
	case errcodes.NotFound, errcodes.LotNotFound, errcodes.PartyNotFound:
		return failure.NewNotFoundError(err.Error(), opts...)
	case errcodes.AuctionAlreadyRunning, errcodes.LotNotPending, errcodes.PartyNameInUse:
		return failure.NewConflictError(err.Error(), opts...)
	case errcodes.InsufficientFunds, errcodes.InvalidFinalBid:
		return failure.NewUnprocessableEntityError(err.Error(), opts...)
	case errcodes.ValidationError, errcodes.InvalidPaging, errcodes.InvalidLotID,
		errcodes.InvalidBasePrice, errcodes.InvalidBalance, errcodes.InvalidBidAmount:
		return failure.NewInvalidArgumentError(err.Error(), opts...)
	default:
		return err
	}
}

func unavailableCode(err error) (failure.ErrorCode, bool) {
	for _, code := range []failure.ErrorCode{errcodes.StateStoreUnavailable, errcodes.RecordStoreUnavailable} {
		if domain.HasCode(err, code) {
			return code, true
		}
	}

	return "", false
}

// descriptionOf отдаёт клиенту только сообщение доменной ошибки, без
// внутренних причин.
func descriptionOf(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}
