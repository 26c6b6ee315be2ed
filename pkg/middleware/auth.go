package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"staybook/pkg/logger"
)

const CustomerIDKey contextKey = "customer_id"

// CustomerIDFrom returns the authenticated customer set by Authentication.
func CustomerIDFrom(ctx context.Context) (string, bool) {
	customerID, ok := ctx.Value(CustomerIDKey).(string)
	return customerID, ok && customerID != ""
}

// Authentication verifies a Bearer token signed with the shared HMAC secret
// and stores the subject claim as the customer identity on the request
// context.
func Authentication(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				rejectUnauthorized(w, log, r, "Missing bearer token")
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				rejectUnauthorized(w, log, r, "Invalid token")
				return
			}

			if claims.Subject == "" {
				rejectUnauthorized(w, log, r, "Token missing subject")
				return
			}

			ctx := context.WithValue(r.Context(), CustomerIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Authentication failed",
		"request_id", requestIDFrom(r),
		"reason", reason,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
