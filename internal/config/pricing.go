package config

import (
	"fmt"
	"strconv"
	"strings"
)

type Pricing struct {
	TaxRates          TaxRates `env:"PRICING_TAX_RATES"           envDefault:"23:423653,22:461343,21:423654,20:459884,18:456470,6:437610,0:461342"`
	DefaultTaxRateID  int64    `env:"PRICING_DEFAULT_TAX_RATE_ID" envDefault:"423653"`
	DefaultVATPercent int      `env:"PRICING_DEFAULT_VAT_PERCENT" envDefault:"23"`
}

type Order struct {
	LocationID          int64  `env:"ORDER_LOCATION_ID"            envDefault:"166154"`
	CustomItemVariantID int64  `env:"ORDER_CUSTOM_ITEM_VARIANT_ID" envDefault:"38207669"`
	DeliveryLeadDays    int    `env:"ORDER_DELIVERY_LEAD_DAYS"     envDefault:"14"`
	DefaultCurrency     string `env:"ORDER_DEFAULT_CURRENCY"       envDefault:"EUR"`
}

// TaxRates maps a VAT percentage to the MRP tax-rate id. Text form is a comma
// separated list of "percent:id" pairs.
type TaxRates map[int]int64

func (t *TaxRates) UnmarshalText(text []byte) error {
	rates := make(TaxRates)

	for _, pair := range strings.Split(string(text), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		percent, id, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("tax rate %q: expected percent:id", pair)
		}

		p, err := strconv.Atoi(strings.TrimSpace(percent))
		if err != nil {
			return fmt.Errorf("tax rate %q: strconv.Atoi: %w", pair, err)
		}

		rateID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return fmt.Errorf("tax rate %q: strconv.ParseInt: %w", pair, err)
		}

		if _, exists := rates[p]; exists {
			return fmt.Errorf("tax rate %q: duplicate percent", pair)
		}

		rates[p] = rateID
	}

	*t = rates

	return nil
}
