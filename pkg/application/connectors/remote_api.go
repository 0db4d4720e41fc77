package connectors

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"

	"dealsync/pkg/httpx"
	"dealsync/pkg/logx"
)

// RemoteAPI lazily builds the http.Client used to talk to one upstream
// service: authentication, dump logging and a duration histogram are layered
// over the default transport. No timeout and no retries are configured.
type RemoteAPI struct {
	value               *http.Client
	Name                string
	BaseURL             string
	Auth                func(next http.RoundTripper) http.RoundTripper
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
	LogFieldMaxLen      int
	// Duration must carry a "service" label next to "code" and "method".
	Duration prometheus.ObserverVec
	init     sync.Once
}

func (r *RemoteAPI) Client(ctx context.Context) *http.Client {
	r.init.Do(func() {
		baseURL := lo.Must(url.Parse(r.BaseURL))

		var transport http.RoundTripper = http.DefaultTransport

		if r.Duration != nil {
			transport = promhttp.InstrumentRoundTripperDuration(
				r.Duration.MustCurryWith(prometheus.Labels{"service": r.Name}),
				transport,
			)
		}

		opts := []httpx.Option{
			httpx.WithServiceName(r.Name),
			httpx.WithLogFieldMaxLen(r.LogFieldMaxLen),
		}

		if r.SensitiveDataMasker != nil {
			opts = append(opts, httpx.WithSensitiveDataMasker(r.SensitiveDataMasker))
		}

		transport = httpx.NewLoggingRoundTripper(transport, opts...)

		if r.Auth != nil {
			transport = r.Auth(transport)
		}

		r.value = &http.Client{Transport: transport} //nolint:exhaustruct

		logger(ctx).Info(
			"remote api configured",
			slog.String(logx.FieldRemoteService, r.Name),
			slog.String("host", baseURL.Host),
		)
	})

	return r.value
}

func (r *RemoteAPI) Close(ctx context.Context) {
	if r.value == nil {
		return
	}

	r.value.CloseIdleConnections()

	logger(ctx).Info("remote api closed", slog.String(logx.FieldRemoteService, r.Name))
}
