package domain

// AuthMethod records which credential scheme authenticated a request.
type AuthMethod string

const (
	// MethodFirstParty means the bearer token was minted by this service
	// in exchange for an API key.
	MethodFirstParty AuthMethod = "first_party"
	// MethodThirdParty means the bearer token was issued by the external
	// identity provider and verified against its published key set.
	MethodThirdParty AuthMethod = "third_party"
)

// VerifiedIdentity is the outcome of bearer verification. It lives for the
// duration of one request and is never persisted.
type VerifiedIdentity struct {
	UserID int64
	Method AuthMethod
}
