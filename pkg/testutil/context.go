package testutil

import (
	"net/http"
	"time"

	"idcheck/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped "now", as the requesttime
// middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID attaches a request ID, as the requestid middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
