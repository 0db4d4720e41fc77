package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/catalog"
	"dealsync/internal/domain/value"
)

type createCall struct {
	name          string
	variant       entity.CatalogVariant
	purchasePrice decimal.Decimal
}

type fakeStore struct {
	variants  []entity.CatalogVariant
	listErr   error
	created   entity.CatalogVariant
	createErr error

	listCalls   []int
	createCalls []createCall
}

func (f *fakeStore) ListVariants(_ context.Context, start, limit int) ([]entity.CatalogVariant, error) {
	f.listCalls = append(f.listCalls, start)

	if f.listErr != nil {
		return nil, f.listErr
	}

	if start >= len(f.variants) {
		return nil, nil
	}

	return f.variants[start:min(start+limit, len(f.variants))], nil
}

func (f *fakeStore) CreateProduct(
	_ context.Context,
	name string,
	variant entity.CatalogVariant,
	purchasePrice decimal.Decimal,
) (entity.CatalogVariant, error) {
	f.createCalls = append(f.createCalls, createCall{name: name, variant: variant, purchasePrice: purchasePrice})

	if f.createErr != nil {
		return entity.CatalogVariant{}, f.createErr
	}

	return f.created, nil
}

type countingRecorder struct {
	created int
}

func (c *countingRecorder) CatalogEntryCreated() {
	c.created++
}

func variants(n int) []entity.CatalogVariant {
	result := make([]entity.CatalogVariant, n)

	for i := range result {
		result[i] = entity.CatalogVariant{ID: int64(i + 1), StockCode: fmt.Sprintf("SKU-%d", i+1)}
	}

	return result
}

func TestResolver_ResolveOrCreate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name        string
		store       *fakeStore
		stockCode   string
		productName string
		price       decimal.Decimal
		expected    entity.CatalogVariant
		found       bool
		listCalls   []int
		createCalls []createCall
	}{
		{
			name:      "Empty stock code",
			store:     &fakeStore{},
			stockCode: "   ",
		},
		{
			name:      "Match on first page, case and space insensitive",
			store:     &fakeStore{variants: variants(3)},
			stockCode: "  sku-2 ",
			expected:  entity.CatalogVariant{ID: 2, StockCode: "SKU-2"},
			found:     true,
			listCalls: []int{0},
		},
		{
			name:      "Match on second page",
			store:     &fakeStore{variants: variants(5)},
			stockCode: "SKU-4",
			expected:  entity.CatalogVariant{ID: 4, StockCode: "SKU-4"},
			found:     true,
			listCalls: []int{0, 2},
		},
		{
			name: "Match without numeric id creates product",
			store: &fakeStore{
				variants: []entity.CatalogVariant{{ID: 0, StockCode: "HX-9"}},
				created:  entity.CatalogVariant{ID: 79, StockCode: "HX-9"},
			},
			stockCode: "HX-9",
			expected:  entity.CatalogVariant{ID: 79, StockCode: "HX-9"},
			found:     true,
			listCalls: []int{0},
			createCalls: []createCall{{
				name:          "Product HX-9",
				variant:       entity.CatalogVariant{StockCode: "HX-9", SalesPrice: decimal.Zero},
				purchasePrice: decimal.Zero,
			}},
		},
		{
			name: "Not found after full pages creates product",
			store: &fakeStore{
				variants: variants(4),
				created:  entity.CatalogVariant{ID: 77, StockCode: "HX-9"},
			},
			stockCode:   "HX-9",
			productName: "Sauna heater",
			price:       decimal.RequireFromString("12.5"),
			expected:    entity.CatalogVariant{ID: 77, StockCode: "HX-9"},
			found:       true,
			listCalls:   []int{0, 2, 4},
			createCalls: []createCall{{
				name:          "Sauna heater",
				variant:       entity.CatalogVariant{StockCode: "HX-9", SalesPrice: decimal.RequireFromString("12.5")},
				purchasePrice: decimal.RequireFromString("6.25"),
			}},
		},
		{
			name: "Created product gets default name and non-negative price",
			store: &fakeStore{
				created: entity.CatalogVariant{ID: 78, StockCode: "HX-10"},
			},
			stockCode:   "HX-10",
			price:       decimal.NewFromInt(-5),
			expected:    entity.CatalogVariant{ID: 78, StockCode: "HX-10"},
			found:       true,
			listCalls:   []int{0},
			createCalls: []createCall{{
				name:          "Product HX-10",
				variant:       entity.CatalogVariant{StockCode: "HX-10", SalesPrice: decimal.Zero},
				purchasePrice: decimal.Zero,
			}},
		},
		{
			name:      "Search error",
			store:     &fakeStore{listErr: errors.New("502: bad gateway")},
			stockCode: "HX-9",
			listCalls: []int{0},
		},
		{
			name:      "Creation error",
			store:     &fakeStore{createErr: errors.New("422: sku taken")},
			stockCode: "HX-9",
			listCalls: []int{0},
			createCalls: []createCall{{
				name:          "Product HX-9",
				variant:       entity.CatalogVariant{StockCode: "HX-9", SalesPrice: decimal.Zero},
				purchasePrice: decimal.Zero,
			}},
		},
		{
			name:      "Created variant without id",
			store:     &fakeStore{created: entity.CatalogVariant{StockCode: "HX-9"}},
			stockCode: "HX-9",
			listCalls: []int{0},
			createCalls: []createCall{{
				name:          "Product HX-9",
				variant:       entity.CatalogVariant{StockCode: "HX-9", SalesPrice: decimal.Zero},
				purchasePrice: decimal.Zero,
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			recorder := &countingRecorder{}
			resolver := catalog.NewResolver(tc.store, 2, recorder)

			variant, found := resolver.ResolveOrCreate(
				context.Background(),
				tc.stockCode,
				tc.productName,
				tc.price,
				value.NewVATRate(23),
			)

			rq.Equal(tc.found, found)
			rq.Equal(tc.expected.ID, variant.ID)
			rq.Equal(tc.listCalls, tc.store.listCalls)
			rq.Len(tc.store.createCalls, len(tc.createCalls))

			for i, expected := range tc.createCalls {
				got := tc.store.createCalls[i]

				rq.Equal(expected.name, got.name)
				rq.Equal(expected.variant.StockCode, got.variant.StockCode)
				rq.True(expected.variant.SalesPrice.Equal(got.variant.SalesPrice))
				rq.True(expected.purchasePrice.Equal(got.purchasePrice))
			}

			if found && len(tc.createCalls) > 0 {
				rq.Equal(1, recorder.created)
			} else {
				rq.Zero(recorder.created)
			}
		})
	}
}

func TestMemo(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{created: entity.CatalogVariant{ID: 77, StockCode: "HX-9"}}
	memo := catalog.NewMemo(catalog.NewResolver(store, 1000, nil))

	ctx := context.Background()

	first, ok := memo.ResolveOrCreate(ctx, "hx-9", "Heater", decimal.NewFromInt(10), value.VATRate{})
	rq.True(ok)

	second, ok := memo.ResolveOrCreate(ctx, " HX-9", "Heater", decimal.NewFromInt(10), value.VATRate{})
	rq.True(ok)

	rq.Equal(first, second)
	rq.Len(store.createCalls, 1)
	rq.Len(store.listCalls, 1)

	_, ok = memo.ResolveOrCreate(ctx, "", "Bench", decimal.NewFromInt(10), value.VATRate{})
	rq.False(ok)
	rq.Len(store.listCalls, 1)
}

func TestMemo_FailuresAreNotRemembered(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{listErr: errors.New("502: bad gateway")}
	memo := catalog.NewMemo(catalog.NewResolver(store, 1000, nil))

	ctx := context.Background()

	_, ok := memo.ResolveOrCreate(ctx, "HX-9", "Heater", decimal.Zero, value.VATRate{})
	rq.False(ok)

	_, ok = memo.ResolveOrCreate(ctx, "HX-9", "Heater", decimal.Zero, value.VATRate{})
	rq.False(ok)
	rq.Len(store.listCalls, 2)
}
