package entity

import "github.com/shopspring/decimal"

// CRMDeal is the CRM view of a deal.
type CRMDeal struct {
	Title    string
	Value    decimal.Decimal
	Currency string
	WonTime  string
}

type CRMDealProduct struct {
	ProductID    int64
	Name         string
	ItemPrice    decimal.Decimal
	Quantity     decimal.NullDecimal
	Discount     decimal.Decimal
	DiscountType string
	Tax          decimal.NullDecimal
	VAT          decimal.NullDecimal
}

type CRMDealProducts struct {
	Items            []CRMDealProduct
	ProductsSumTotal decimal.Decimal
}

// CRMProduct holds the product details used to complete a line item. SKU is
// the value of the configured custom field.
type CRMProduct struct {
	Name string
	SKU  string
	Tax  decimal.NullDecimal
	VAT  decimal.NullDecimal
}
