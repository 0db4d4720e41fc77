package server

import (
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/dealsync"
	"dealsync/internal/domain/value"
	"dealsync/pkg/rest"
)

func newSyncRequest(request rest.SyncOrderRequest) dealsync.SyncRequest {
	syncRequest := dealsync.SyncRequest{
		DealID:    request.DealID.String(),
		WonTime:   request.WonTime,
		DealTitle: request.DealTitle,
		Currency:  request.Currency,
	}

	if request.Customer != nil {
		syncRequest.CustomerName = request.Customer.Name
		syncRequest.CustomerEmail = request.Customer.Email
	}

	// nil keeps its meaning: load the line items from the CRM.
	if request.Products != nil {
		syncRequest.Products = make([]entity.DealLineItem, 0, len(request.Products))

		for _, product := range request.Products {
			syncRequest.Products = append(syncRequest.Products, newDomainLineItem(product))
		}
	}

	return syncRequest
}

func newDomainLineItem(product rest.SyncProduct) entity.DealLineItem {
	return entity.DealLineItem{
		Name:             product.Name,
		StockCode:        product.SKU,
		Quantity:         int(product.Quantity.IntPart()),
		UnitPrice:        product.PricePerUnit,
		VAT:              value.VATRateFromDecimal(product.VATRate),
		LineDiscount:     product.DiscountPercent,
		LineDiscountKind: value.DiscountTotalPercentage,
	}
}

func newSyncOrderResponse(result dealsync.SyncResult) rest.SyncOrderResponse {
	return rest.SyncOrderResponse{
		Success:          true,
		OrderID:          result.OrderID,
		OrderNo:          result.OrderNo,
		CustomItemsCount: result.CustomItemsCount,
	}
}
