package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dealsync/internal/config"
)

func TestLoad(t *testing.T) {
	rq := require.New(t)

	t.Setenv("KATANA_API_KEY", "katana-key")
	t.Setenv("PIPEDRIVE_API_TOKEN", "pipedrive-token")
	t.Setenv("PIPEDRIVE_COMPANY_DOMAIN", "saunamo")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	rq.NoError(err)

	rq.Equal("https://api.katanamrp.com/v1", cfg.Katana.BaseURL)
	rq.Equal(1000, cfg.Katana.PageLimit)
	rq.Equal("https://saunamo.pipedrive.com/api/v1", cfg.Pipedrive.URL())
	rq.Equal("43a32efde94b5e07af24690d5b8db5dc18f5680a", cfg.Pipedrive.SKUFieldKey)
	rq.Equal(config.TaxRates{
		23: 423653,
		22: 461343,
		21: 423654,
		20: 459884,
		18: 456470,
		6:  437610,
		0:  461342,
	}, cfg.Pricing.TaxRates)
	rq.Equal(int64(423653), cfg.Pricing.DefaultTaxRateID)
	rq.Equal(23, cfg.Pricing.DefaultVATPercent)
	rq.Equal(int64(166154), cfg.Order.LocationID)
	rq.Equal(int64(38207669), cfg.Order.CustomItemVariantID)
	rq.Equal(14, cfg.Order.DeliveryLeadDays)
	rq.Equal("EUR", cfg.Order.DefaultCurrency)
	rq.Equal(10*time.Second, cfg.HTTP.ShutdownTimeout)
	rq.Equal(slog.LevelDebug, cfg.Log.Level)
	rq.Empty(cfg.Bot.Token)
}

func TestLoad_MissingSecrets(t *testing.T) {
	rq := require.New(t)

	t.Setenv("KATANA_API_KEY", "")
	t.Setenv("PIPEDRIVE_API_TOKEN", "pipedrive-token")
	t.Setenv("PIPEDRIVE_COMPANY_DOMAIN", "saunamo")

	_, err := config.Load()
	rq.Error(err)
}

func TestTaxRates_UnmarshalText(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		input    string
		expected config.TaxRates
		err      bool
	}{
		{name: "Pairs", input: "23:1, 0:2", expected: config.TaxRates{23: 1, 0: 2}},
		{name: "Trailing comma", input: "6:3,", expected: config.TaxRates{6: 3}},
		{name: "Missing id", input: "23", err: true},
		{name: "Bad percent", input: "x:1", err: true},
		{name: "Duplicate", input: "23:1,23:2", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var rates config.TaxRates

			err := rates.UnmarshalText([]byte(tc.input))
			if tc.err {
				rq.Error(err)

				return
			}

			rq.NoError(err)
			rq.Equal(tc.expected, rates)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	rq := require.New(t)

	valid := config.Config{
		Katana:  config.Katana{PageLimit: 1000},
		Pricing: config.Pricing{TaxRates: config.TaxRates{23: 1}, DefaultTaxRateID: 1},
		Order:   config.Order{LocationID: 1, CustomItemVariantID: 2, DeliveryLeadDays: 14},
	}
	rq.NoError(valid.Validate())

	invalid := valid
	invalid.Order.CustomItemVariantID = 0
	invalid.Bot = config.Bot{Token: "123:abc"}

	err := invalid.Validate()
	rq.ErrorContains(err, "ORDER_CUSTOM_ITEM_VARIANT_ID")
	rq.ErrorContains(err, "BOT_CHAT_ID")
}
