package dealsync

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/pricing"
	"dealsync/internal/domain/value"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/logx"
	"dealsync/pkg/lox"
)

// loadLineItems pulls the deal line items from the CRM and derives the
// deal-level discount from the gap between their sum and the deal value.
func (s Service) loadLineItems(
	ctx context.Context,
	dealID string,
	deal entity.CRMDeal,
) ([]entity.DealLineItem, decimal.Decimal, error) {
	products, err := s.crm.GetDealProducts(ctx, dealID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("crm.GetDealProducts: %w", err)
	}

	if len(products.Items) == 0 {
		return nil, decimal.Zero, failure.NewInvalidArgumentError(
			"deal has no products",
			failure.WithCode(errcodes.NoDealProducts),
			failure.WithDescription("No products in deal"),
		)
	}

	dealDiscount := pricing.DealLevelDiscount(products.ProductsSumTotal, deal.Value)

	linked := lo.Filter(products.Items, func(line entity.CRMDealProduct, _ int) bool {
		return line.ProductID != 0
	})

	items, err := lox.MapErr(linked, func(line entity.CRMDealProduct) (entity.DealLineItem, error) {
		product, err := s.crm.GetProduct(ctx, line.ProductID)
		if err != nil {
			return entity.DealLineItem{}, fmt.Errorf("crm.GetProduct: %w", err)
		}

		return lineItem(line, product), nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	logger(ctx).Debug(
		"deal line items loaded",
		slog.Int("items", len(items)),
		logx.Decimal(logx.FieldDealDiscount, dealDiscount),
	)

	return items, dealDiscount, nil
}

func lineItem(line entity.CRMDealProduct, product entity.CRMProduct) entity.DealLineItem {
	name := cmp.Or(line.Name, product.Name)

	quantity := 1
	if line.Quantity.Valid {
		quantity = int(line.Quantity.Decimal.IntPart())
	}

	return entity.DealLineItem{
		Name:             cmp.Or(name, "Unknown"),
		StockCode:        stockCode(product.SKU, name),
		Quantity:         quantity,
		UnitPrice:        line.ItemPrice,
		VAT:              lineVAT(line, product),
		LineDiscount:     line.Discount,
		LineDiscountKind: value.ParseDiscountKind(line.DiscountType),
	}
}

// stockCode prefers the dedicated field and falls back to the code after the
// last "|" of a "Product Name | CODE" name.
func stockCode(field, name string) string {
	if code := strings.TrimSpace(field); code != "" {
		return code
	}

	if i := strings.LastIndex(name, "|"); i > 0 {
		return strings.TrimSpace(name[i+1:])
	}

	return ""
}

func lineVAT(line entity.CRMDealProduct, product entity.CRMProduct) value.VATRate {
	for _, candidate := range []decimal.NullDecimal{line.Tax, line.VAT, product.Tax, product.VAT} {
		if candidate.Valid {
			return value.VATRateFromDecimal(candidate)
		}
	}

	return value.VATRate{}
}
