package order

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"dealsync/internal/domain/entity"
	"dealsync/pkg/logx"
)

type orderLister interface {
	ListSalesOrders(ctx context.Context, limit int) ([]entity.ExistingOrder, error)
}

// Guard looks up an order by its external order number before a sync creates
// one. It fails open: a lookup error reads as no existing order.
type Guard struct {
	orders    orderLister
	listLimit int
}

func NewGuard(orders orderLister, listLimit int) Guard {
	return Guard{
		orders:    orders,
		listLimit: listLimit,
	}
}

func (g Guard) FindExisting(ctx context.Context, orderNo string) (entity.ExistingOrder, bool) {
	orders, err := g.orders.ListSalesOrders(ctx, g.listLimit)
	if err != nil {
		logger(ctx).Warn("duplicate check failed, proceeding", logx.Error(err))

		return entity.ExistingOrder{}, false
	}

	orderNo = strings.TrimSpace(orderNo)

	existing, ok := lo.Find(orders, func(o entity.ExistingOrder) bool {
		return strings.TrimSpace(o.OrderNo) == orderNo
	})
	if ok {
		logger(ctx).Info(
			"order already exists",
			slog.Int64(logx.FieldOrderID, existing.ID),
			slog.String(logx.FieldOrderNo, existing.OrderNo),
		)
	}

	return existing, ok
}
