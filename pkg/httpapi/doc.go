// Package httpapi exposes a schema registry over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness, or readiness with WithReadinessChecks
//	GET    /metrics                  Prometheus metrics, with WithMetrics
//	GET    /schemas                  registered names
//	GET    /schemas/{name}           schema description
//	PUT    /schemas/{name}           register a JSON or YAML description
//	DELETE /schemas/{name}           remove a schema
//	POST   /schemas/{name}/validate  validate a JSON object
//
// Validation answers 200 with {"valid", "value", "errors"} for a valid record
// and 422 with the same body for an invalid one. Messages follow the
// Accept-Language header. Every other failure uses the error envelope:
//
//	{"error": {"code": "not_found", "message": "...", "request_id": "..."}}
//
// Each request carries an X-Request-ID, reused from the client when it is
// well formed. RequestIDExtractor puts it into log records.
package httpapi
