package testutil

import (
	"context"
	"net/http"
	"time"

	"inklusi/pkg/requestcontext"
)

// WithCaller adds an authenticated caller e-mail to the request context,
// simulating what the auth middleware does for authenticated requests.
func WithCaller(req *http.Request, email string) *http.Request {
	return req.WithContext(requestcontext.WithCallerEmail(req.Context(), email))
}

// FixedTimeContext returns a context with a pinned request time so service
// tests produce deterministic timestamps.
func FixedTimeContext(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}
