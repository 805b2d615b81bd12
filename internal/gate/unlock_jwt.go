package gate

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"siteforge/internal/util"
)

const unlockIssuer = "siteforge"

// JWTUnlockStore issues stateless HS256 unlock tokens. The token subject is
// the site id and expiry enforces the TTL, so no server-side state is kept.
type JWTUnlockStore struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTUnlockStore builds a signing unlock store from a shared secret.
func NewJWTUnlockStore(secret string, ttl time.Duration) (*JWTUnlockStore, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("unlock secret required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTUnlockStore{secret: []byte(secret), ttl: ttl}, nil
}

// Unlock signs a token bound to siteID.
func (s *JWTUnlockStore) Unlock(siteID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   siteID,
		Issuer:    unlockIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        util.NewID(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IsUnlocked verifies the signature and that the token was issued for siteID.
func (s *JWTUnlockStore) IsUnlocked(siteID, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(unlockIssuer),
		jwt.WithIssuedAt(),
	)
	if err != nil || !parsed.Valid {
		return false
	}
	return claims.Subject == siteID
}
