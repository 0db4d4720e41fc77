package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"dealsync/internal/config"
	"dealsync/internal/domain/entity"
	"dealsync/internal/domain/service/dealsync"
	"dealsync/internal/infrastructure/katana"
	"dealsync/internal/infrastructure/notifier"
	"dealsync/internal/infrastructure/pipedrive"
	"dealsync/internal/infrastructure/telemetry"
	"dealsync/internal/server"
	"dealsync/pkg/application/connectors"
	"dealsync/pkg/application/modules"
	"dealsync/pkg/contextx"
	"dealsync/pkg/httpx"
	"dealsync/pkg/logx"
	"dealsync/pkg/metrics"
	"dealsync/pkg/probe"
)

const (
	readHeaderTimeout = 5 * time.Second
	dialCheckTimeout  = 3 * time.Second
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type reviewNotifier interface {
	NotifyCustomItems(ctx context.Context, review entity.OrderReview) error
}

type Application struct {
	cfg config.Config
}

func New(cfg config.Config) Application {
	return Application{cfg: cfg}
}

// Run serves the sync trigger, the probes and the metrics until ctx is done
// or one of them fails.
func (a Application) Run(ctx context.Context) error {
	cfg := a.cfg
	g, ctx := errgroup.WithContext(ctx)

	registry := metrics.NewRegistry()
	syncMetrics := telemetry.NewSyncMetrics(registry)
	masker := logx.NewSensitiveDataMasker()

	katanaAPI := &connectors.RemoteAPI{
		Name:    "katana",
		BaseURL: cfg.Katana.BaseURL,
		Auth: func(next http.RoundTripper) http.RoundTripper {
			return httpx.NewAuthBearerRoundTripper(next, httpx.StaticToken(cfg.Katana.APIKey))
		},
		SensitiveDataMasker: masker,
		LogFieldMaxLen:      cfg.HTTP.LogFieldMaxLen,
		Duration:            syncMetrics.RemoteDuration,
	}
	defer katanaAPI.Close(ctx)

	pipedriveAPI := &connectors.RemoteAPI{
		Name:    "pipedrive",
		BaseURL: cfg.Pipedrive.URL(),
		Auth: func(next http.RoundTripper) http.RoundTripper {
			return httpx.NewAPITokenRoundTripper(next, "api_token", httpx.StaticToken(cfg.Pipedrive.APIToken))
		},
		SensitiveDataMasker: masker,
		LogFieldMaxLen:      cfg.HTTP.LogFieldMaxLen,
		Duration:            syncMetrics.RemoteDuration,
	}
	defer pipedriveAPI.Close(ctx)

	katanaClient := katana.NewClient(cfg.Katana.BaseURL, katanaAPI.Client(ctx))
	pipedriveClient := pipedrive.NewClient(cfg.Pipedrive.URL(), cfg.Pipedrive.SKUFieldKey, pipedriveAPI.Client(ctx))

	var reviews reviewNotifier

	if cfg.Bot.Token != "" {
		reviewBot, err := notifier.NewReviewNotifier(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewReviewNotifier: %w", err)
		}

		reviews = reviewBot

		g.Go(func() error {
			return reviewBot.Run(ctx)
		})
	} else {
		logger(ctx).Info("review notifier disabled")
	}

	syncService := dealsync.NewService(cfg, pipedriveClient, katanaClient, reviews, syncMetrics)

	srv := server.NewServer(server.NewSyncServer(syncService))

	modules.HTTPServer{
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           srv.Handler(masker, cfg.HTTP.LogFieldMaxLen),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
		Checks: []probe.Check{
			probe.DialCheck("katana", dialAddress(cfg.Katana.BaseURL), dialCheckTimeout),
			probe.DialCheck("pipedrive", dialAddress(cfg.Pipedrive.URL()), dialCheckTimeout),
		},
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	logger(ctx).Info("application started", slog.String("katana", cfg.Katana.BaseURL))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// dialAddress turns a base URL into host:port, filling the port from the
// scheme.
func dialAddress(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.Port() != "" {
		return u.Host
	}

	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}

	return net.JoinHostPort(u.Hostname(), port)
}
