package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"staybook/pkg/logger"
)

const testSecret = "test-secret"

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func signToken(t *testing.T, claims jwt.RegisteredClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestAuthentication_ValidToken(t *testing.T) {
	var gotCustomerID string
	handler := Authentication(testSecret, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCustomerID, _ = CustomerIDFrom(r.Context())
	}))

	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "customer-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, testSecret)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authRequest(token))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotCustomerID != "customer-42" {
		t.Errorf("expected customer-42 on context, got %q", gotCustomerID)
	}
}

func TestAuthentication_Rejections(t *testing.T) {
	expired := signToken(t, jwt.RegisteredClaims{
		Subject:   "customer-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}, testSecret)
	wrongSecret := signToken(t, jwt.RegisteredClaims{
		Subject:   "customer-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, "other-secret")
	noSubject := signToken(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not.a.jwt"},
		{"expired token", expired},
		{"wrong secret", wrongSecret},
		{"missing subject", noSubject},
	}

	handler := Authentication(testSecret, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected requests")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authRequest(tt.token))

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
