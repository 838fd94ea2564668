package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/schemakit"
	"github.com/dmitrymomot/schemakit/pkg/logger"
)

// language negotiates Accept-Language against the validator's catalog.
// Requests without the header use the validator's default language.
func (a *API) language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("Accept-Language"); header != "" {
			lang := a.registry.Validator().Catalog().MatchAcceptLanguage(header)
			w.Header().Set("Content-Language", lang)
			r = r.WithContext(schemakit.WithLanguage(r.Context(), lang))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.logger.DebugContext(r.Context(), "request handled",
			logger.Component("httpapi"),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			logger.Duration(time.Since(start)))
	})
}
