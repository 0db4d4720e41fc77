package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Katana    Katana
	Pipedrive Pipedrive
	Pricing   Pricing
	Order     Order
	HTTP      HTTP
	Log       Log
	Bot       Bot
}

type App struct {
	Name    string `env:"APP_NAME"    envDefault:"dealsync"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type HTTP struct {
	ListenAddress        string        `env:"HTTP_LISTEN_ADDRESS"    envDefault:":8080"`
	ProbeListenAddress   string        `env:"PROBE_LISTEN_ADDRESS"   envDefault:":8081"`
	MetricsListenAddress string        `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ShutdownTimeout      time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT"  envDefault:"10s"`
	LogFieldMaxLen       int           `env:"LOG_FIELD_MAX_LEN"      envDefault:"4096"`
}

type Log struct {
	Level slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

// Bot configures the review notifier. An empty token disables it.
type Bot struct {
	Token  string `env:"BOT_TOKEN"   json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Validate: %w", err)
	}

	return config, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Katana.PageLimit <= 0 {
		errs = append(errs, errors.New("KATANA_PAGE_LIMIT must be positive"))
	}

	if c.Order.LocationID <= 0 {
		errs = append(errs, errors.New("ORDER_LOCATION_ID must be positive"))
	}

	if c.Order.CustomItemVariantID <= 0 {
		errs = append(errs, errors.New("ORDER_CUSTOM_ITEM_VARIANT_ID must be positive"))
	}

	if c.Order.DeliveryLeadDays < 0 {
		errs = append(errs, errors.New("ORDER_DELIVERY_LEAD_DAYS must not be negative"))
	}

	if len(c.Pricing.TaxRates) == 0 {
		errs = append(errs, errors.New("PRICING_TAX_RATES must not be empty"))
	}

	if c.Pricing.DefaultTaxRateID <= 0 {
		errs = append(errs, errors.New("PRICING_DEFAULT_TAX_RATE_ID must be positive"))
	}

	if c.Bot.Token != "" && c.Bot.ChatID == 0 {
		errs = append(errs, errors.New("BOT_CHAT_ID is required when BOT_TOKEN is set"))
	}

	return errors.Join(errs...)
}
