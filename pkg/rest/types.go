package rest

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// SyncOrderRequest is the trigger payload. Products and WonTime are optional:
// absent values are loaded from the CRM.
type SyncOrderRequest struct {
	DealID    DealID        `json:"deal_id"`
	Products  []SyncProduct `json:"products"   validate:"omitempty,dive"`
	WonTime   string        `json:"won_time"`
	DealTitle string        `json:"deal_title"`
	Currency  string        `json:"currency"`
	Customer  *SyncCustomer `json:"customer"`
}

// SyncProduct is a caller-built line item. DiscountPercent is already the
// combined line and deal discount.
type SyncProduct struct {
	Name            string              `json:"name"`
	SKU             string              `json:"sku"`
	Quantity        decimal.Decimal     `json:"quantity"         validate:"gte=0"`
	PricePerUnit    decimal.Decimal     `json:"price_per_unit"   validate:"gte=0"`
	VATRate         decimal.NullDecimal `json:"vat_rate"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Currency        string              `json:"currency"`
}

type SyncCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SyncOrderResponse struct {
	Success          bool   `json:"success"`
	OrderID          int64  `json:"order_id"`
	OrderNo          string `json:"order_no"`
	CustomItemsCount int    `json:"custom_items_count"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DealID accepts both a JSON string and a JSON number. A numeric zero or
// null reads as no deal id.
type DealID string

func (d *DealID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*d = ""
	case len(b) > 0 && b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("strconv.Unquote: %w", err)
		}

		*d = DealID(s)
	default:
		n, err := decimal.NewFromString(string(b))
		if err != nil {
			return errors.New("deal_id must be a string or a number")
		}

		if n.IsZero() {
			*d = ""

			return nil
		}

		*d = DealID(n.String())
	}

	return nil
}

func (d DealID) String() string {
	return string(d)
}
