package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	ErrSecretNotConfigured = errors.New("token secret not configured")
	ErrReservedClaim       = errors.New("identity claim uses a reserved key")
	ErrInvalidToken        = errors.New("invalid token")
)

// reservedClaims are set by the issuer and stripped again on verification,
// so an identity claim may not carry them.
var reservedClaims = []string{"exp", "iat", "nbf", "jti"}

// IssuedToken is a signed session token together with the metadata needed to
// set its cookie and, when enabled, revoke it later.
type IssuedToken struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// TokenManager signs identity claims and verifies the resulting tokens with a
// shared HMAC secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager using the wall clock
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return NewTokenManagerWithClock(secret, ttl, time.Now)
}

// NewTokenManagerWithClock creates a token manager with an explicit clock
func NewTokenManagerWithClock(secret string, ttl time.Duration, now func() time.Time) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs the identity claim with an absolute expiry of now+ttl. The claim
// is not validated beyond rejecting reserved keys.
func (m *TokenManager) Issue(identity Identity) (*IssuedToken, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	for _, key := range reservedClaims {
		if _, ok := identity[key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrReservedClaim, key)
		}
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	tokenID := ulid.Make().String()

	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(expiresAt)
	claims["jti"] = tokenID

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{
		Value:     signed,
		ID:        tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken checks signature and expiry and returns the session carried by
// the token. All failures wrap ErrInvalidToken.
func (m *TokenManager) ValidateToken(tokenString string) (*SessionData, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)

	identity := make(Identity, len(claims))
	for k, v := range claims {
		identity[k] = v
	}
	for _, key := range reservedClaims {
		delete(identity, key)
	}

	return &SessionData{
		Identity:  identity,
		TokenID:   tokenID,
		ExpiresAt: expiresAt.Time,
	}, nil
}
