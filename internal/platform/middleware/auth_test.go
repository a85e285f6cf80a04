package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"idcheck/pkg/requestcontext"
)

type stubValidator map[string]string

func (s stubValidator) Subject(token string) (string, error) {
	if sub, ok := s[token]; ok {
		return sub, nil
	}
	return "", errors.New("bad token")
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var subject string
	h := RequireAuth(stubValidator{"good": "pipeline"}, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = requestcontext.Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
		desc   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer good", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, "/v1/validations/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.desc != "" {
				assert.JSONEq(t, `{"error":"unauthorized","error_description":"`+tc.desc+`"}`, rr.Body.String())
				assert.Empty(t, subject)
			} else {
				assert.Equal(t, "pipeline", subject)
			}
		})
	}
}
