package accesslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idcheck/pkg/platform/middleware/metadata"
	"idcheck/pkg/testutil"
)

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.Use(Middleware(logger))
	r.Get("/v1/validations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/validations/abc", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	r.ServeHTTP(httptest.NewRecorder(), testutil.WithRequestID(req, "req-1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "/v1/validations/{id}", entry["route"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "192.0.2.1", entry["client_ip"])
	assert.NotContains(t, entry, "subject")
}
