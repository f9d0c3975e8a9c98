package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"inklusi/pkg/requestcontext"
)

// identityClaims are the claims the identity provider puts in its access
// tokens. This service only reads the e-mail; it never checks credentials.
type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequireIdentity validates the bearer token issued by the identity provider
// and injects the caller's e-mail (lowercased) into the request context.
// Downstream, the access gate resolves that e-mail against the whitelist;
// this middleware performs no authorization of its own.
func RequireIdentity(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "bearer token required")
				return
			}

			claims := &identityClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenUnverifiable
				}
				return signingKey, nil
			})
			if err != nil || !parsed.Valid || claims.Email == "" {
				logger.WarnContext(r.Context(), "unauthorized access - invalid identity token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			// Case normalization happens here, once, at the trust boundary;
			// the whitelist store matches exactly.
			email := strings.ToLower(strings.TrimSpace(claims.Email))
			ctx := requestcontext.WithCallerEmail(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}
