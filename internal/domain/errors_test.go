package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"auction_house/internal/domain"
	"auction_house/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection refused")
	inner := domain.WrapError(cause, errcodes.InsufficientFunds, "debit rejected")
	outer := domain.WrapError(fmt.Errorf("settle: %w", inner), errcodes.RecordStoreUnavailable, "transaction failed")

	rq.Equal("debit rejected: connection refused", inner.Error())
	rq.ErrorIs(outer, cause)
	rq.ErrorIs(outer, domain.NewError(errcodes.InsufficientFunds, ""))
	rq.NotErrorIs(outer, domain.NewError(errcodes.LotNotFound, ""))

	code, ok := domain.GetCode(outer)
	rq.True(ok)
	rq.Equal(errcodes.RecordStoreUnavailable, code)

	rq.True(domain.HasCode(outer, errcodes.InsufficientFunds))
	rq.True(domain.HasCode(outer, errcodes.RecordStoreUnavailable))
	rq.False(domain.HasCode(outer, errcodes.InvalidFinalBid))
	rq.False(domain.HasCode(cause, errcodes.InsufficientFunds))

	_, ok = domain.GetCode(cause)
	rq.False(ok)
	rq.False(domain.IsAppError(cause))
	rq.True(domain.IsAppError(fmt.Errorf("wrapped: %w", inner)))
}
