package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/registry"
)

const defaultMaxBodySize = 1 << 20

// API serves the schema registry and validation over HTTP.
type API struct {
	registry    *registry.Registry
	logger      *slog.Logger
	gatherer    prometheus.Gatherer
	checks      []func(context.Context) error
	maxBodySize int64
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger for access logs and error responses.
// Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(a *API) {
		a.gatherer = g
	}
}

// WithReadinessChecks turns /healthz into a readiness probe that fails when
// any check returns an error.
func WithReadinessChecks(checks ...func(context.Context) error) Option {
	return func(a *API) {
		a.checks = append(a.checks, checks...)
	}
}

// WithMaxBodySize limits request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

// New creates an API serving the schemas of reg. Request bodies are limited
// to 1 MiB unless WithMaxBodySize says otherwise.
func New(reg *registry.Registry, opts ...Option) *API {
	a := &API{
		registry:    reg,
		logger:      logger.Discard(),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns the router.
//
//	GET    /healthz
//	GET    /metrics
//	GET    /schemas
//	GET    /schemas/{name}
//	PUT    /schemas/{name}
//	DELETE /schemas/{name}
//	POST   /schemas/{name}/validate
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.health)
	if a.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", a.listSchemas)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", a.getSchema)
			r.Put("/", a.putSchema)
			r.Delete("/", a.deleteSchema)
			r.With(a.language).Post("/validate", a.validate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, ErrNotFound)
	})
	return r
}
