package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/registry"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Response is the envelope of every non-validation response.
type Response struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details carries per-attribute
// information for schema errors.
type ErrorDetail struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError classifies err, logs it and renders the error envelope.
// Client errors log at warn, server errors at error.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := classifyError(err)
	detail.RequestID = RequestIDFromContext(r.Context())

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		logger.Error(err))

	writeJSON(w, status, Response{Error: detail})
}

func classifyError(err error) (int, *ErrorDetail) {
	var (
		httpErr   HTTPError
		schemaErr *schema.SchemaError
		maxErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &schemaErr):
		details := map[string]string{"path": schemaErr.Path, "reason": schemaErr.Reason}
		if schemaErr.Attribute != "" {
			details["attribute"] = schemaErr.Attribute
		}
		return ErrInvalidSchema.Code, &ErrorDetail{
			Code:    ErrInvalidSchema.Key,
			Message: schemaErr.Error(),
			Details: details,
		}
	case errors.As(err, &maxErr):
		return detailFor(ErrRequestEntityTooLarge, err)
	case errors.Is(err, registry.ErrNotFound):
		return detailFor(ErrNotFound, err)
	case errors.Is(err, registry.ErrInvalidName):
		return detailFor(ErrInvalidName, err)
	case errors.Is(err, context.DeadlineExceeded):
		return detailFor(ErrGatewayTimeout, nil)
	case errors.As(err, &httpErr):
		return detailFor(httpErr, err)
	}
	return detailFor(ErrInternalServerError, nil)
}

// detailFor exposes cause's message for client errors only.
func detailFor(e HTTPError, cause error) (int, *ErrorDetail) {
	msg := http.StatusText(e.Code)
	if cause != nil && e.Code < http.StatusInternalServerError {
		msg = cause.Error()
	}
	return e.Code, &ErrorDetail{Code: e.Key, Message: msg}
}
