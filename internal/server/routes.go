package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"dealsync/internal/domain"
	"dealsync/pkg/errcodes"
	"dealsync/pkg/httpx/reply"
	"dealsync/pkg/logx"
	"dealsync/pkg/middlewarex"
)

// Handler wraps the routes into the middleware stack shared by every
// endpoint.
func (s Server) Handler(sensitiveDataMasker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, logFieldMaxLen),
		cors.Handler(cors.Options{
			AllowedOrigins:     []string{"*"},
			AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:     []string{"Content-Type"},
			OptionsPassthrough: false,
		}),
	)

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.NotFound(handler(notFound))
	r.MethodNotAllowed(handler(methodNotAllowed))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sync_order", handler(s.postV1SyncOrder))
		r.Options("/sync_order", handler(options))
		r.Get("/health", handler(s.getV1Health))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}

// options answers OPTIONS requests that carry no preflight headers.
func options(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusOK)

	return nil
}

func notFound(http.ResponseWriter, *http.Request) error {
	return domain.NewError(errcodes.NotFound, "Not found")
}

func methodNotAllowed(http.ResponseWriter, *http.Request) error {
	return domain.NewError(errcodes.MethodNotAllowed, "Method not allowed")
}
