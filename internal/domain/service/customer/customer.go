package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"dealsync/internal/domain/entity"
	"dealsync/pkg/contextx"
	"dealsync/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var ErrNoCustomerID = errors.New("created customer has no numeric id")

type customerStore interface {
	ListCustomers(ctx context.Context, limit int) ([]entity.Customer, error)
	CreateCustomer(ctx context.Context, customer entity.Customer, currency string) (entity.Customer, error)
}

type Resolver struct {
	store           customerStore
	listLimit       int
	defaultCurrency string
}

func NewResolver(store customerStore, listLimit int, defaultCurrency string) Resolver {
	return Resolver{
		store:           store,
		listLimit:       listLimit,
		defaultCurrency: defaultCurrency,
	}
}

// ResolveOrCreate matches name against a single page of customers and
// creates the customer when nothing matches. A failed listing skips straight
// to creation.
func (r Resolver) ResolveOrCreate(ctx context.Context, name, email string) (entity.Customer, error) {
	customers, err := r.store.ListCustomers(ctx, r.listLimit)
	if err != nil {
		logger(ctx).Warn("customer listing failed, creating customer", logx.Error(err))
	}

	if existing, ok := lo.Find(customers, func(c entity.Customer) bool {
		return c.ID > 0 && strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
	}); ok {
		logger(ctx).Debug("customer found", slog.Int64(logx.FieldCustomerID, existing.ID))

		return existing, nil
	}

	created, err := r.store.CreateCustomer(ctx, entity.Customer{Name: name, Email: email}, r.defaultCurrency)
	if err != nil {
		return entity.Customer{}, fmt.Errorf("store.CreateCustomer: %w", err)
	}

	if created.ID <= 0 {
		return entity.Customer{}, ErrNoCustomerID
	}

	logger(ctx).Info("customer created", slog.Int64(logx.FieldCustomerID, created.ID))

	return created, nil
}
