package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"dealsync/internal/domain/value"
)

// DealLineItem is one CRM line item prepared for order assembly.
type DealLineItem struct {
	Name      string
	StockCode string
	Quantity  int
	UnitPrice decimal.Decimal
	VAT       value.VATRate
	// LineDiscount is a percentage or, with DiscountAmount, a currency amount
	// for the whole line.
	LineDiscount     decimal.Decimal
	LineDiscountKind value.DiscountKind
}

type DealContext struct {
	DealID   string
	Title    string
	Currency string
	WonTime  time.Time
	// DealLevelDiscount is a percentage derived from the gap between the
	// summed line values and the closed deal value.
	DealLevelDiscount decimal.Decimal
}
