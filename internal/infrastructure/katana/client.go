package katana

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"dealsync/internal/domain"
	"dealsync/internal/domain/entity"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/httpx"
	"dealsync/pkg/jsonx"
	"dealsync/pkg/lox"
)

const (
	endpointSalesOrders = "sales_orders"
	endpointCustomers   = "customers"
	endpointVariants    = "variants"
	endpointProducts    = "products"
)

// Client talks to the Katana MRP REST API. Authentication and logging live
// in the http.Client transport.
type Client struct {
	api httpx.Client
}

func NewClient(baseURL string, httpClient *http.Client) Client {
	return Client{
		api: httpx.NewClient(baseURL, httpClient),
	}
}

func (c Client) ListSalesOrders(ctx context.Context, limit int) ([]entity.ExistingOrder, error) {
	var list jsonx.List[salesOrderSchema]

	if err := c.api.Get(ctx, endpointSalesOrders, limitQuery(limit), &list); err != nil {
		return nil, remoteError(err, http.MethodGet, endpointSalesOrders)
	}

	return lox.Map(list.Items, salesOrderSchema.toExisting), nil
}

func (c Client) CreateSalesOrder(ctx context.Context, order entity.Order) (entity.CreatedOrder, error) {
	var item jsonx.Item[salesOrderSchema]

	err := c.api.Post(ctx, endpointSalesOrders, newCreateSalesOrderRequest(order), &item)
	if err != nil {
		return entity.CreatedOrder{}, remoteError(err, http.MethodPost, endpointSalesOrders)
	}

	return item.Value.toCreated(), nil
}

func (c Client) ListCustomers(ctx context.Context, limit int) ([]entity.Customer, error) {
	var list jsonx.List[customerSchema]

	if err := c.api.Get(ctx, endpointCustomers, limitQuery(limit), &list); err != nil {
		return nil, remoteError(err, http.MethodGet, endpointCustomers)
	}

	return lox.Map(list.Items, customerSchema.toDomain), nil
}

func (c Client) CreateCustomer(
	ctx context.Context,
	customer entity.Customer,
	currency string,
) (entity.Customer, error) {
	request := createCustomerRequest{
		Name:     customer.Name,
		Email:    customer.Email,
		Currency: currency,
	}

	var item jsonx.Item[customerSchema]

	if err := c.api.Post(ctx, endpointCustomers, request, &item); err != nil {
		return entity.Customer{}, remoteError(err, http.MethodPost, endpointCustomers)
	}

	return item.Value.toDomain(), nil
}

func (c Client) ListVariants(ctx context.Context, start, limit int) ([]entity.CatalogVariant, error) {
	query := limitQuery(limit)
	query.Set("start", strconv.Itoa(start))

	var list jsonx.List[variantSchema]

	if err := c.api.Get(ctx, endpointVariants, query, &list); err != nil {
		return nil, remoteError(err, http.MethodGet, endpointVariants)
	}

	return lox.Map(list.Items, variantSchema.toDomain), nil
}

// CreateProduct creates a product carrying exactly one variant and returns
// that variant. The API has no call for a bare variant.
func (c Client) CreateProduct(
	ctx context.Context,
	name string,
	variant entity.CatalogVariant,
	purchasePrice decimal.Decimal,
) (entity.CatalogVariant, error) {
	request := createProductRequest{
		Name: name,
		Variants: []createVariantRequest{{
			SKU:           variant.StockCode,
			SalesPrice:    variant.SalesPrice.InexactFloat64(),
			PurchasePrice: purchasePrice.InexactFloat64(),
		}},
	}

	var item jsonx.Item[productSchema]

	if err := c.api.Post(ctx, endpointProducts, request, &item); err != nil {
		return entity.CatalogVariant{}, remoteError(err, http.MethodPost, endpointProducts)
	}

	if len(item.Value.Variants) == 0 {
		return entity.CatalogVariant{}, domain.NewError(
			errcodes.MalformedRemoteResponse,
			"katana: POST products: no variant in response",
		)
	}

	created := item.Value.Variants[0].toDomain()
	if created.StockCode == "" {
		created.StockCode = variant.StockCode
	}

	return created, nil
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

func remoteError(err error, method, endpoint string) error {
	code := errcodes.RemoteCallFailed
	if errors.Is(err, httpx.ErrMalformedResponse) {
		code = errcodes.MalformedRemoteResponse
	}

	return domain.WrapError(err, code, "katana: "+method+" "+endpoint)
}
