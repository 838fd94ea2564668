package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/schemakit/pkg/registry"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

type schemaInfo struct {
	Name   string         `json:"name"`
	Fields []string       `json:"fields"`
	Schema *schema.Schema `json:"schema,omitempty"`
}

func (a *API) listSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Data: a.registry.Names()})
}

func (a *API) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	e, err := a.registry.Get(name)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: schemaInfo{Name: name, Fields: e.Schema.Names(), Schema: e.Schema}})
}

// putSchema accepts JSON or YAML (by Content-Type) and answers 201 for a new
// schema and 200 for a replaced one.
func (a *API) putSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !registry.ValidName(name) {
		a.writeError(w, r, fmt.Errorf("%w: %q", registry.ErrInvalidName, name))
		return
	}

	format, err := bodyFormat(r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	body, err := a.readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	s, err := schema.Parse(body, format)
	if err != nil {
		a.writeError(w, r, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	_, existed := a.registry.Lookup(name)
	if err := a.registry.Save(r.Context(), name, s); err != nil {
		a.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, Response{Data: schemaInfo{Name: name, Fields: s.Names()}})
}

func (a *API) deleteSchema(w http.ResponseWriter, r *http.Request) {
	if err := a.registry.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validate answers 200 for a valid record and 422 for an invalid one, with
// the result as body in both cases.
func (a *API) validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, err := a.registry.Get(name); err != nil {
		a.writeError(w, r, err)
		return
	}

	body, err := a.readBody(w, r)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		a.writeError(w, r, fmt.Errorf("%w: body must be a JSON object: %w", ErrBadRequest, err))
		return
	}
	if data == nil {
		a.writeError(w, r, fmt.Errorf("%w: body must be a JSON object", ErrBadRequest))
		return
	}

	res, err := a.registry.Validate(r.Context(), name, data)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if !res.Valid() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (a *API) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBodySize))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrBadRequest)
	}
	return body, nil
}

func bodyFormat(r *http.Request) (schema.Format, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return schema.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Join(ErrUnsupportedMediaType, err)
	}
	switch mt {
	case "application/json":
		return schema.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return schema.FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
}
