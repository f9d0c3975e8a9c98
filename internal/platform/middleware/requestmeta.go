// Package middleware provides the HTTP middleware chain: request metadata,
// identity extraction, and client metadata for audit enrichment.
package middleware

import (
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"inklusi/pkg/requestcontext"
)

// RequestMeta stamps each request with a correlation ID and a request-scoped
// time, and captures client metadata for audit enrichment. The request time
// is read once here so every store write within the request observes the same
// timestamp.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

		ip := clientIP(r)
		ua := r.UserAgent()
		ctx = requestcontext.WithClientMetadata(ctx, ip, ua, deviceFamily(ua))

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// deviceFamily condenses a raw User-Agent into "Browser/OS" for audit events,
// which keeps PII-adjacent UA strings out of the compliance topic.
func deviceFamily(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	os := ua.OSInfo().Name
	if name == "" && os == "" {
		return "unknown"
	}
	return name + "/" + os
}
