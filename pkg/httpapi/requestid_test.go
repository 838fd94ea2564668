package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/httpapi"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, header string) (string, string) {
		t.Helper()
		var seen string
		h := httpapi.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = httpapi.RequestIDFromContext(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(httpapi.RequestIDHeader, header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return seen, rec.Header().Get(httpapi.RequestIDHeader)
	}

	t.Run("generates an id when missing", func(t *testing.T) {
		t.Parallel()

		seen, echoed := serve(t, "")
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, echoed)
	})

	t.Run("reuses well formed ids", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"abc123", "ABC-123_xyz", "550e8400-e29b-41d4-a716-446655440000"} {
			seen, echoed := serve(t, id)
			assert.Equal(t, id, seen)
			assert.Equal(t, id, echoed)
		}
	})

	t.Run("replaces malformed ids", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"a b", "a/b", "<script>", strings.Repeat("a", 129)} {
			seen, echoed := serve(t, id)
			assert.NotEqual(t, id, seen)
			assert.Equal(t, seen, echoed)
		}
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extract := httpapi.RequestIDExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(httpapi.WithRequestID(context.Background(), "req-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "req-1", attr.Value.String())
}
