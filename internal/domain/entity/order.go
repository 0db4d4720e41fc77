package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CatalogVariant struct {
	ID         int64
	StockCode  string
	SalesPrice decimal.Decimal
}

type Customer struct {
	ID    int64
	Name  string
	Email string
}

type OrderRow struct {
	VariantID  int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TaxRateID  int64
	LocationID int64
}

// CustomItemNote mirrors a row that fell back to the custom-item variant.
// RowIndex is the 1-based row position.
type CustomItemNote struct {
	RowIndex  int
	Name      string
	StockCode string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Order struct {
	ExternalOrderNumber string
	CustomerID          int64
	ReferenceTitle      string
	CreatedDate         time.Time
	DeliveryDate        time.Time
	Currency            string
	LocationID          int64
	Rows                []OrderRow
	Note                string
}

// ExistingOrder is an order already present in the MRP.
type ExistingOrder struct {
	ID      int64
	OrderNo string
}

type CreatedOrder struct {
	ID      int64
	OrderNo string
}

// OrderReview asks a human to check the custom items of a created order.
type OrderReview struct {
	DealID      string
	DealTitle   string
	OrderID     int64
	OrderNo     string
	CustomItems []CustomItemNote
}
