package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenLifetime is deliberately short: tokens are expected to be
// re-minted frequently from a long-lived API key.
const DefaultTokenLifetime = 15 * time.Minute

// TokenIssuer implements ports.TokenIssuer with RS256.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	lifetime   time.Duration
}

// NewTokenIssuer builds an issuer signing with privateKey. privateKey may be
// nil for verify-only deployments; Mint then fails.
func NewTokenIssuer(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string, lifetime time.Duration) *TokenIssuer {
	if privateKey != nil && publicKey == nil {
		publicKey = &privateKey.PublicKey
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenIssuer{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		lifetime:   lifetime,
	}
}

// Mint issues a signed token bound to userID with iat=now and
// exp=now+lifetime. The jti claim exists only for log correlation.
func (t *TokenIssuer) Mint(userID int64) (string, error) {
	if t.privateKey == nil {
		return "", errors.New("token issuer has no private key")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    t.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(t.privateKey)
}

// Validate checks signature, issuer and expiry, and returns the user id
// carried in the subject claim. Only RS256-signed tokens are accepted.
func (t *TokenIssuer) Validate(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("subject is not a user id: %w", err)
	}
	return userID, nil
}
