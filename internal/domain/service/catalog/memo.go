package catalog

import (
	"context"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/value"
)

type variantResolver interface {
	ResolveOrCreate(
		ctx context.Context,
		stockCode string,
		name string,
		referencePrice decimal.Decimal,
		vat value.VATRate,
	) (entity.CatalogVariant, bool)
}

// Memo remembers successful resolutions for the lifetime of one sync run, so
// a stock code repeated within a deal is searched and created only once.
// Failures are not remembered.
type Memo struct {
	resolver variantResolver
	cache    *cache.Cache
}

func NewMemo(resolver variantResolver) Memo {
	return Memo{
		resolver: resolver,
		cache:    cache.New(cache.NoExpiration, 0),
	}
}

func (m Memo) ResolveOrCreate(
	ctx context.Context,
	stockCode string,
	name string,
	referencePrice decimal.Decimal,
	vat value.VATRate,
) (entity.CatalogVariant, bool) {
	key := strings.ToUpper(strings.TrimSpace(stockCode))

	if cached, ok := m.cache.Get(key); ok {
		return cached.(entity.CatalogVariant), true //nolint:forcetypeassert
	}

	variant, ok := m.resolver.ResolveOrCreate(ctx, stockCode, name, referencePrice, vat)
	if ok && key != "" {
		m.cache.SetDefault(key, variant)
	}

	return variant, ok
}
