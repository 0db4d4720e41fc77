package pipedrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dealsync/internal/domain"
	"dealsync/internal/domain/entity"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/httpx"
)

// Client reads deals and products from the Pipedrive REST API. The API token
// is added to the query by the transport.
type Client struct {
	api         httpx.Client
	skuFieldKey string
}

func NewClient(baseURL string, skuFieldKey string, httpClient *http.Client) Client {
	return Client{
		api:         httpx.NewClient(baseURL, httpClient),
		skuFieldKey: skuFieldKey,
	}
}

func (c Client) GetDeal(ctx context.Context, dealID string) (entity.CRMDeal, error) {
	endpoint := "deals/" + url.PathEscape(dealID)

	var resp dealResponse

	if err := c.api.Get(ctx, endpoint, nil, &resp); err != nil {
		return entity.CRMDeal{}, remoteError(err, endpoint)
	}

	return resp.toDomain(), nil
}

func (c Client) GetDealProducts(ctx context.Context, dealID string) (entity.CRMDealProducts, error) {
	endpoint := fmt.Sprintf("deals/%s/products", url.PathEscape(dealID))

	var resp dealProductsResponse

	if err := c.api.Get(ctx, endpoint, nil, &resp); err != nil {
		return entity.CRMDealProducts{}, remoteError(err, endpoint)
	}

	return resp.toDomain(), nil
}

func (c Client) GetProduct(ctx context.Context, productID int64) (entity.CRMProduct, error) {
	endpoint := "products/" + strconv.FormatInt(productID, 10)

	var resp productResponse

	if err := c.api.Get(ctx, endpoint, nil, &resp); err != nil {
		return entity.CRMProduct{}, remoteError(err, endpoint)
	}

	product, err := resp.toDomain(c.skuFieldKey)
	if err != nil {
		return entity.CRMProduct{}, domain.WrapError(err, errcodes.MalformedRemoteResponse, "pipedrive: GET "+endpoint)
	}

	return product, nil
}

func remoteError(err error, endpoint string) error {
	code := errcodes.RemoteCallFailed
	if errors.Is(err, httpx.ErrMalformedResponse) {
		code = errcodes.MalformedRemoteResponse
	}

	return domain.WrapError(err, code, "pipedrive: GET "+endpoint)
}
