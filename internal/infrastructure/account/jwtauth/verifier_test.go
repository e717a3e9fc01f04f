package jwtauth

import (
	"errors"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

var verifierNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() Claims {
	return Claims{
		Email: "torcedor@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "cartola-auth",
			IssuedAt:  jwt.NewNumericDate(verifierNow.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(verifierNow.Add(time.Hour)),
		},
	}
}

func newTestVerifier(t *testing.T, issuer string) *Verifier {
	t.Helper()
	v, err := NewVerifier(testSecret, issuer)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}
	v.now = func() time.Time { return verifierNow }
	return v
}

func TestVerifier_AcceptsValidToken(t *testing.T) {
	v := newTestVerifier(t, "cartola-auth")

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
	principal, err := v.VerifyAccessToken(t.Context(), "  "+token+"  ")
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "torcedor@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(verifierNow.Add(-time.Hour))

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims()
	noSubject.Subject = ""

	cases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{name: "empty", token: func(*testing.T) string { return "" }},
		{name: "garbage", token: func(*testing.T) string { return "not-a-jwt" }},
		{name: "wrong secret", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims())
		}},
		{name: "wrong algorithm", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())
		}},
		{name: "expired", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired)
		}},
		{name: "no expiry", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExpiry)
		}},
		{name: "wrong issuer", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer)
		}},
		{name: "no subject", token: func(t *testing.T) string {
			return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)
		}},
	}

	v := newTestVerifier(t, "cartola-auth")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.VerifyAccessToken(t.Context(), tc.token(t))
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier("   ", ""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
