package pipedrive

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"dealsync/internal/domain/entity"
	"dealsync/pkg/jsonx"
	"dealsync/pkg/lox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type dealResponse struct {
	Data struct {
		Title    string          `json:"title"`
		Value    decimal.Decimal `json:"value"`
		Currency string          `json:"currency"`
		WonTime  jsonx.Text      `json:"won_time"`
	} `json:"data"`
}

func (r dealResponse) toDomain() entity.CRMDeal {
	return entity.CRMDeal{
		Title:    r.Data.Title,
		Value:    r.Data.Value,
		Currency: r.Data.Currency,
		WonTime:  r.Data.WonTime.String(),
	}
}

type dealProductSchema struct {
	ProductID    jsonx.ID            `json:"product_id"`
	Name         string              `json:"name"`
	ItemPrice    decimal.Decimal     `json:"item_price"`
	Quantity     decimal.NullDecimal `json:"quantity"`
	Discount     decimal.Decimal     `json:"discount"`
	DiscountType string              `json:"discount_type"`
	Tax          decimal.NullDecimal `json:"tax"`
	VAT          decimal.NullDecimal `json:"vat"`
}

func (s dealProductSchema) toDomain() entity.CRMDealProduct {
	return entity.CRMDealProduct{
		ProductID:    s.ProductID.Int64(),
		Name:         s.Name,
		ItemPrice:    s.ItemPrice,
		Quantity:     s.Quantity,
		Discount:     s.Discount,
		DiscountType: s.DiscountType,
		Tax:          s.Tax,
		VAT:          s.VAT,
	}
}

type dealProductsResponse struct {
	Data           []dealProductSchema `json:"data"`
	AdditionalData struct {
		ProductsSumTotal decimal.Decimal `json:"products_sum_total"`
	} `json:"additional_data"`
}

func (r dealProductsResponse) toDomain() entity.CRMDealProducts {
	return entity.CRMDealProducts{
		Items:            lox.Map(r.Data, dealProductSchema.toDomain),
		ProductsSumTotal: r.AdditionalData.ProductsSumTotal,
	}
}

// productResponse keeps the raw fields because the SKU lives under a custom
// field key chosen per CRM account.
type productResponse struct {
	Data map[string]jsoniter.RawMessage `json:"data"`
}

func (r productResponse) toDomain(skuFieldKey string) (entity.CRMProduct, error) {
	var product entity.CRMProduct

	var name, sku jsonx.Text

	fields := []struct {
		key  string
		dest any
	}{
		{key: "name", dest: &name},
		{key: skuFieldKey, dest: &sku},
		{key: "tax", dest: &product.Tax},
		{key: "vat", dest: &product.VAT},
	}

	for _, field := range fields {
		raw, ok := r.Data[field.key]
		if !ok || len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		if err := json.Unmarshal(raw, field.dest); err != nil {
			return entity.CRMProduct{}, err //nolint:wrapcheck
		}
	}

	product.Name = name.String()
	product.SKU = sku.String()

	return product, nil
}
