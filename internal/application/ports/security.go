package ports

import "context"

// TokenIssuer mints and validates the service's own short-lived RS256
// bearer tokens. Validate returns the bound user id on success.
type TokenIssuer interface {
	Mint(userID int64) (string, error)
	Validate(token string) (int64, error)
}

// ProviderVerifier validates a bearer token against the external identity
// provider's published key set and returns the provider subject claim.
type ProviderVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// MembershipCache answers "which teams does this user belong to" without a
// store round-trip per request. Mutating operations must call Invalidate
// for every user whose membership set they changed.
type MembershipCache interface {
	TeamsOf(ctx context.Context, userID int64) ([]int64, error)
	Invalidate(userID int64)
}
