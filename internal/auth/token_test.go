package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 7*24*time.Hour)

	token, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned an empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("claims should carry an expiry")
	}

	// Expiry should land ttl from now, give or take clock skew in the test.
	wantExp := time.Now().Add(7 * 24 * time.Hour)
	if diff := claims.ExpiresAt.Time.Sub(wantExp); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry off by %v", diff)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify of expired token = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a JWT", "nonsense"},
		{"truncated", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q) = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "user-123",
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing unsigned token failed: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify of alg=none token = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_RejectsMissingUserID(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	// Properly signed, but the uid claim is absent.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify of token without uid = %v, want ErrInvalidToken", err)
	}
}
