package domain

import "time"

// APIKey is a long-lived opaque credential owned by a user. The secret
// string itself is the primary key; lookup is exact, case-sensitive.
type APIKey struct {
	Key         string
	UserID      int64
	Description string
	CreatedAt   time.Time
	LastUsed    time.Time
}
