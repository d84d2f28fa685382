package auth

import (
	"context"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// ExchangeKey trades an API key for a short-lived signed token. The key's
// last_used stamp is updated on every successful exchange.
type ExchangeKey struct {
	keys   ports.APIKeyRepository
	issuer ports.TokenIssuer
}

func NewExchangeKey(keys ports.APIKeyRepository, issuer ports.TokenIssuer) *ExchangeKey {
	return &ExchangeKey{keys: keys, issuer: issuer}
}

func (uc *ExchangeKey) Execute(ctx context.Context, secret string) (string, error) {
	key, err := uc.keys.GetBySecret(ctx, secret)
	if err != nil {
		return "", err
	}
	if key == nil {
		return "", domerrors.ErrInvalidCredential
	}
	if err := uc.keys.TouchLastUsed(ctx, key.Key, time.Now()); err != nil {
		return "", err
	}
	return uc.issuer.Mint(key.UserID)
}
