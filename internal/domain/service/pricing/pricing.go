package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"dealsync/internal/config"
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/value"
)

//nolint:gochecknoglobals
var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// LinePrice is the outcome of pricing one line item.
type LinePrice struct {
	UnitPrice     decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxRateID     int64
}

type taxRate struct {
	percent int
	id      int64
}

// Engine prices line items and maps VAT percentages to MRP tax-rate ids.
type Engine struct {
	rates             []taxRate
	defaultTaxRateID  int64
	defaultVATPercent int
}

func NewEngine(cfg config.Pricing) Engine {
	rates := make([]taxRate, 0, len(cfg.TaxRates))

	for percent, id := range cfg.TaxRates {
		rates = append(rates, taxRate{percent: percent, id: id})
	}

	sort.Slice(rates, func(i, j int) bool {
		return rates[i].percent > rates[j].percent
	})

	return Engine{
		rates:             rates,
		defaultTaxRateID:  cfg.DefaultTaxRateID,
		defaultVATPercent: cfg.DefaultVATPercent,
	}
}

func (e Engine) LinePrice(item entity.DealLineItem, dealDiscount decimal.Decimal) LinePrice {
	total := CompoundDiscount(LineDiscountPercent(item), dealDiscount)
	if item.LineDiscountKind == value.DiscountTotalPercentage {
		total = clampPercent(item.LineDiscount)
	}

	return LinePrice{
		UnitPrice:     DiscountedPrice(item.UnitPrice, total),
		TotalDiscount: total,
		TaxRateID:     e.TaxRateID(item.VAT),
	}
}

// TaxRateID returns the id of the exact rate, else of the largest tabulated
// rate below vat, else the default id. An unknown rate is looked up as the
// default VAT percent.
func (e Engine) TaxRateID(vat value.VATRate) int64 {
	percent, ok := vat.Percent()
	if !ok {
		percent = e.defaultVATPercent
	}

	// rates are sorted descending, so the first rate not above percent is
	// either the exact match or the nearest one below.
	for _, r := range e.rates {
		if r.percent <= percent {
			return r.id
		}
	}

	return e.defaultTaxRateID
}

// LineDiscountPercent normalises the line discount to a percentage in
// [0, 100].
func LineDiscountPercent(item entity.DealLineItem) decimal.Decimal {
	discount := item.LineDiscount

	if item.LineDiscountKind == value.DiscountAmount {
		rowTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !rowTotal.IsPositive() {
			return decimal.Zero
		}

		discount = discount.Div(rowTotal).Mul(hundred)
	}

	return clampPercent(discount)
}

// CompoundDiscount applies deal on the remainder left by line:
// line + deal × (1 − line/100), rounded to 2 places and capped at 100.
func CompoundDiscount(line, deal decimal.Decimal) decimal.Decimal {
	line = clampPercent(line)
	deal = clampPercent(deal)

	remainder := decimal.NewFromInt(1).Sub(line.Div(hundred))
	total := line.Add(deal.Mul(remainder)).Round(2)

	return decimal.Min(total, hundred)
}

// DealLevelDiscount derives the aggregate deal discount from the summed line
// values and the closed deal value. It is 0 unless 0 < value < sum.
func DealLevelDiscount(productsSum, dealValue decimal.Decimal) decimal.Decimal {
	if !productsSum.IsPositive() || !dealValue.IsPositive() || !dealValue.LessThan(productsSum) {
		return decimal.Zero
	}

	return productsSum.Sub(dealValue).Div(productsSum).Mul(hundred).Round(2)
}

func DiscountedPrice(price, totalDiscount decimal.Decimal) decimal.Decimal {
	if totalDiscount.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}

	discounted := price.Mul(decimal.NewFromInt(1).Sub(totalDiscount.Div(hundred)))

	return decimal.Max(decimal.Zero, discounted)
}

// PurchasePrice is the default cost of a newly created catalog variant.
func PurchasePrice(salesPrice decimal.Decimal) decimal.Decimal {
	return salesPrice.Mul(half)
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(p, decimal.Zero), hundred)
}
