package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the token signature, shape, or expiry check
// failed. All verification failures collapse into this single error so the
// caller cannot distinguish them.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of a bearer token. A Claims value is only
// ever produced by TokenService.Verify after the signature and expiry checks
// pass; handlers must never build one from raw input.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: there is no server-side session record and no
// revocation path, so a token stays valid until its natural expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// Tokens expire ttl after issuance.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed HS256 token embedding the user id and an expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token and returns its claims. It fails with
// ErrInvalidToken when the signature does not match, the payload is
// malformed, the signing method is not HMAC, or the token is expired.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
