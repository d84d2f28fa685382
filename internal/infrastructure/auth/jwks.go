package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// DefaultKeysetTTL bounds how long a fetched provider key set is reused
// before it is refreshed.
const DefaultKeysetTTL = time.Hour

// KeysetFetcher retrieves a provider's published JSON Web Key Set. The
// network call may be retried by the implementation; this package treats a
// final failure as an invalid credential.
type KeysetFetcher interface {
	Fetch(ctx context.Context, url string) (*jose.JSONWebKeySet, error)
}

// HTTPKeysetFetcher fetches a JWKS document over HTTP.
type HTTPKeysetFetcher struct {
	Client *http.Client
}

func (f *HTTPKeysetFetcher) Fetch(ctx context.Context, url string) (*jose.JSONWebKeySet, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}
	var keyset jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&keyset); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}
	return &keyset, nil
}

// ProviderVerifier validates bearer tokens issued by the external identity
// provider, resolving signing keys by kid from the provider's JWKS endpoint.
// Fetched key sets are cached for a TTL; an unknown kid forces one refresh
// before the token is rejected.
type ProviderVerifier struct {
	jwksURL  string
	issuer   string
	audience string
	fetcher  KeysetFetcher
	ttl      time.Duration

	mu        sync.Mutex
	keyset    *jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewProviderVerifier builds a verifier for the provider at domain
// (e.g. "auth.jiggy.ai"): issuer "https://<domain>/", key set at
// "https://<domain>/.well-known/jwks.json".
func NewProviderVerifier(domain, audience string, fetcher KeysetFetcher, ttl time.Duration) *ProviderVerifier {
	if fetcher == nil {
		fetcher = &HTTPKeysetFetcher{}
	}
	if ttl <= 0 {
		ttl = DefaultKeysetTTL
	}
	return &ProviderVerifier{
		jwksURL:  fmt.Sprintf("https://%s/.well-known/jwks.json", domain),
		issuer:   fmt.Sprintf("https://%s/", domain),
		audience: audience,
		fetcher:  fetcher,
		ttl:      ttl,
	}
}

// Verify checks signature, audience, issuer and expiry, and returns the
// provider's subject claim. Only RS256-signed tokens are accepted. All
// failures are reported as an invalid credential wrapping the underlying
// reason.
func (v *ProviderVerifier) Verify(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		return v.signingKey(ctx, kid)
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer(v.issuer), jwt.WithAudience(v.audience), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %s", domerrors.ErrInvalidCredential, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject claim", domerrors.ErrInvalidCredential)
	}
	return claims.Subject, nil
}

// signingKey returns the public key for kid, refreshing the cached key set
// when it is stale or does not contain the kid.
func (v *ProviderVerifier) signingKey(ctx context.Context, kid string) (interface{}, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keyset != nil && time.Since(v.fetchedAt) < v.ttl {
		if keys := v.keyset.Key(kid); len(keys) > 0 {
			return keys[0].Key, nil
		}
	}
	keyset, err := v.fetcher.Fetch(ctx, v.jwksURL)
	if err != nil {
		return nil, err
	}
	v.keyset = keyset
	v.fetchedAt = time.Now()
	if keys := keyset.Key(kid); len(keys) > 0 {
		return keys[0].Key, nil
	}
	return nil, fmt.Errorf("no signing key for kid %q", kid)
}
