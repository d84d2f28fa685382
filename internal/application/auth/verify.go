package auth

import (
	"context"
	"fmt"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// VerifyCredential resolves a bearer credential to an internal identity.
// The two accepted credential kinds are visually indistinguishable bearer
// strings, so the chain is ordered: a token minted by this service is tried
// first, and ANY first-party failure falls through to the identity-provider
// path rather than surfacing. Only the provider path can reject the request.
type VerifyCredential struct {
	issuer   ports.TokenIssuer
	provider ports.ProviderVerifier
	users    ports.UserRepository
}

func NewVerifyCredential(issuer ports.TokenIssuer, provider ports.ProviderVerifier, users ports.UserRepository) *VerifyCredential {
	return &VerifyCredential{issuer: issuer, provider: provider, users: users}
}

func (uc *VerifyCredential) Execute(ctx context.Context, credential string) (*domain.VerifiedIdentity, error) {
	if userID, err := uc.issuer.Validate(credential); err == nil {
		return &domain.VerifiedIdentity{UserID: userID, Method: domain.MethodFirstParty}, nil
	}

	subject, err := uc.provider.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	userID, err := uc.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	return &domain.VerifiedIdentity{UserID: userID, Method: domain.MethodThirdParty}, nil
}

// resolve maps a provider subject to an internal user id. A subject with no
// linked account is NOT treated as authenticated; account creation is a
// separate, explicit operation.
func (uc *VerifyCredential) resolve(ctx context.Context, subject string) (int64, error) {
	user, err := uc.users.GetByAuth0Subject(ctx, subject)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, fmt.Errorf("%w: subject %q", domerrors.ErrUserNotFound, subject)
	}
	return user.ID, nil
}
