package domain

import "time"

// User is an internal account. Auth0Subject binds the account to the
// external identity provider; it is nil for keys-only accounts.
type User struct {
	ID            int64
	Username      string
	Auth0Subject  *string
	DefaultTeamID int64
	CreatedAt     time.Time
}

// Username length limits, shared by registration and profile updates.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 39
)
