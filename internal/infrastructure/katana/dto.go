package katana

import (
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/value"
	"dealsync/pkg/jsonx"
)

type salesOrderSchema struct {
	ID      jsonx.ID   `json:"id"`
	OrderNo jsonx.Text `json:"order_no"`
}

func (s salesOrderSchema) toExisting() entity.ExistingOrder {
	return entity.ExistingOrder{ID: s.ID.Int64(), OrderNo: s.OrderNo.String()}
}

func (s salesOrderSchema) toCreated() entity.CreatedOrder {
	return entity.CreatedOrder{ID: s.ID.Int64(), OrderNo: s.OrderNo.String()}
}

type customerSchema struct {
	ID    jsonx.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

func (s customerSchema) toDomain() entity.Customer {
	return entity.Customer{ID: s.ID.Int64(), Name: s.Name, Email: s.Email}
}

type variantSchema struct {
	ID  jsonx.ID `json:"id"`
	SKU string   `json:"sku"`
}

func (s variantSchema) toDomain() entity.CatalogVariant {
	return entity.CatalogVariant{ID: s.ID.Int64(), StockCode: s.SKU}
}

type productSchema struct {
	ID       jsonx.ID        `json:"id"`
	Variants []variantSchema `json:"variants"`
}

type createCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

type createVariantRequest struct {
	SKU           string  `json:"sku"`
	SalesPrice    float64 `json:"sales_price"`
	PurchasePrice float64 `json:"purchase_price"`
}

type createProductRequest struct {
	Name     string                 `json:"name"`
	Variants []createVariantRequest `json:"variants"`
}

type salesOrderRowRequest struct {
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	TaxRateID    int64   `json:"tax_rate_id"`
	LocationID   int64   `json:"location_id"`
	VariantID    int64   `json:"variant_id"`
}

type createSalesOrderRequest struct {
	OrderNo          string                 `json:"order_no"`
	CustomerID       int64                  `json:"customer_id"`
	CustomerRef      string                 `json:"customer_ref"`
	OrderCreatedDate string                 `json:"order_created_date"`
	DeliveryDate     string                 `json:"delivery_date"`
	Currency         string                 `json:"currency"`
	LocationID       int64                  `json:"location_id"`
	SalesOrderRows   []salesOrderRowRequest `json:"sales_order_rows"`
	AdditionalInfo   string                 `json:"additional_info,omitempty"`
}

func newCreateSalesOrderRequest(order entity.Order) createSalesOrderRequest {
	rows := make([]salesOrderRowRequest, 0, len(order.Rows))

	for _, row := range order.Rows {
		rows = append(rows, salesOrderRowRequest{
			Quantity:     row.Quantity,
			PricePerUnit: row.UnitPrice.InexactFloat64(),
			TaxRateID:    row.TaxRateID,
			LocationID:   row.LocationID,
			VariantID:    row.VariantID,
		})
	}

	return createSalesOrderRequest{
		OrderNo:          order.ExternalOrderNumber,
		CustomerID:       order.CustomerID,
		CustomerRef:      order.ReferenceTitle,
		OrderCreatedDate: value.FormatMRPTimestamp(order.CreatedDate),
		DeliveryDate:     value.FormatMRPTimestamp(order.DeliveryDate),
		Currency:         order.Currency,
		LocationID:       order.LocationID,
		SalesOrderRows:   rows,
		AdditionalInfo:   order.Note,
	}
}
