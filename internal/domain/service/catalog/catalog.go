package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/pricing"
	"dealsync/internal/domain/value"
	"dealsync/pkg/contextx"
	"dealsync/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type variantStore interface {
	ListVariants(ctx context.Context, start, limit int) ([]entity.CatalogVariant, error)
	CreateProduct(
		ctx context.Context,
		name string,
		variant entity.CatalogVariant,
		purchasePrice decimal.Decimal,
	) (entity.CatalogVariant, error)
}

type creationRecorder interface {
	CatalogEntryCreated()
}

type nopRecorder struct{}

func (nopRecorder) CatalogEntryCreated() {}

// Resolver finds a catalog variant by stock code or creates a product with
// that single variant. It never fails: every problem reads as not found and
// the caller decides what to do.
type Resolver struct {
	store     variantStore
	pageLimit int
	recorder  creationRecorder
}

func NewResolver(store variantStore, pageLimit int, recorder creationRecorder) Resolver {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return Resolver{
		store:     store,
		pageLimit: pageLimit,
		recorder:  recorder,
	}
}

func (r Resolver) ResolveOrCreate(
	ctx context.Context,
	stockCode string,
	name string,
	referencePrice decimal.Decimal,
	vat value.VATRate,
) (entity.CatalogVariant, bool) {
	stockCode = strings.TrimSpace(stockCode)
	if stockCode == "" {
		return entity.CatalogVariant{}, false
	}

	log := logger(ctx).With(slog.String(logx.FieldStockCode, stockCode))

	variant, found, err := r.find(ctx, stockCode)
	if err != nil {
		log.Warn("catalog search failed", logx.Error(err))

		return entity.CatalogVariant{}, false
	}

	switch {
	case found && variant.ID > 0:
		log.Debug("catalog variant found", slog.Int64(logx.FieldVariantID, variant.ID))

		return variant, true
	case found:
		log.Warn("catalog variant has no numeric id, creating a new product")
	}

	if name == "" {
		name = "Product " + stockCode
	}

	salesPrice := decimal.Max(decimal.Zero, referencePrice)

	created, err := r.store.CreateProduct(
		ctx,
		name,
		entity.CatalogVariant{StockCode: stockCode, SalesPrice: salesPrice},
		pricing.PurchasePrice(salesPrice),
	)
	if err != nil {
		log.Warn("catalog product creation failed", logx.Error(err))

		return entity.CatalogVariant{}, false
	}

	if created.ID <= 0 {
		log.Warn("created catalog variant has no numeric id")

		return entity.CatalogVariant{}, false
	}

	r.recorder.CatalogEntryCreated()

	log.Info(
		"catalog product created",
		slog.Int64(logx.FieldVariantID, created.ID),
		slog.String("vat", vat.String()),
	)

	return created, true
}

// find pages through the catalog until a variant matches, a page comes back
// empty or a page is shorter than the page limit.
func (r Resolver) find(ctx context.Context, stockCode string) (entity.CatalogVariant, bool, error) {
	for start := 0; ; start += r.pageLimit {
		page, err := r.store.ListVariants(ctx, start, r.pageLimit)
		if err != nil {
			return entity.CatalogVariant{}, false, err
		}

		if len(page) == 0 {
			return entity.CatalogVariant{}, false, nil
		}

		if variant, ok := lo.Find(page, func(v entity.CatalogVariant) bool {
			return sameStockCode(v.StockCode, stockCode)
		}); ok {
			return variant, true, nil
		}

		if len(page) < r.pageLimit {
			return entity.CatalogVariant{}, false, nil
		}
	}
}

func sameStockCode(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
