package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"dealsync/internal/domain"
	"dealsync/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("502: bad gateway")
	remote := domain.WrapError(cause, errcodes.RemoteCallFailed, "katana: GET sales_orders")
	wrapped := fmt.Errorf("orders.Create: %w", remote)

	rq.Equal("katana: GET sales_orders: 502: bad gateway", remote.Error())
	rq.ErrorIs(wrapped, cause)
	rq.True(domain.IsAppError(wrapped))

	code, ok := domain.GetCode(wrapped)
	rq.True(ok)
	rq.Equal(errcodes.RemoteCallFailed, code)

	_, ok = domain.GetCode(cause)
	rq.False(ok)
}

func TestAppErrorHasCode(t *testing.T) {
	rq := require.New(t)

	inner := domain.NewError(errcodes.RemoteCallFailed, "pipedrive: GET deals/7")
	outer := domain.WrapError(fmt.Errorf("crm.GetDeal: %w", inner), errcodes.InternalServerError, "load deal")

	rq.True(domain.HasCode(outer, errcodes.InternalServerError))
	rq.True(domain.HasCode(outer, errcodes.RemoteCallFailed))
	rq.False(domain.HasCode(outer, errcodes.OrderAlreadyExists))
	rq.False(domain.HasCode(errors.New("plain"), errcodes.RemoteCallFailed))
}

func TestAppErrorDetails(t *testing.T) {
	rq := require.New(t)

	err := domain.NewError(errcodes.OrderAlreadyExists, "Order already exists").
		WithDetail("order_id", int64(99)).
		WithDetail("order_no", "1042")

	rq.Equal(map[string]any{"order_id": int64(99), "order_no": "1042"}, err.Details())
	rq.Nil(domain.NewError(errcodes.NotFound, "x").Details())
}
