package ports

import (
	"context"
	"time"

	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil)
// when no row matches.
type UserRepository interface {
	// Register creates the user together with their personal team, the
	// admin membership on it, and the initial API key, in one transaction.
	Register(ctx context.Context, user *domain.User, team *domain.Team, member *domain.TeamMember, key *domain.APIKey) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByAuth0Subject(ctx context.Context, subject string) (*domain.User, error)
	// Delete removes the user and cascades their API keys, memberships and
	// personal team in one transaction.
	Delete(ctx context.Context, user *domain.User) error
}

// APIKeyRepository defines persistence for API keys. The secret string is
// the primary key; an insert collision means the entropy assumption broke
// and is reported as a plain storage error, never as a conflict.
type APIKeyRepository interface {
	Insert(ctx context.Context, key *domain.APIKey) error
	GetBySecret(ctx context.Context, secret string) (*domain.APIKey, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.APIKey, error)
	TouchLastUsed(ctx context.Context, secret string, at time.Time) error
	Delete(ctx context.Context, secret string) error
}

// TeamRepository defines persistence for teams and memberships.
type TeamRepository interface {
	// CreateWithAdmin inserts the team row and its first admin membership
	// atomically; a failure on either leaves neither behind.
	CreateWithAdmin(ctx context.Context, team *domain.Team, member *domain.TeamMember) error
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	GetByName(ctx context.Context, name string) (*domain.Team, error)
	ListTeamIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	ListMembers(ctx context.Context, teamID int64) ([]*domain.TeamMember, error)
	GetMembership(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error)
	GetMemberByID(ctx context.Context, memberID int64) (*domain.TeamMember, error)
	InsertMember(ctx context.Context, m *domain.TeamMember) error
	UpdateMember(ctx context.Context, memberID int64, role *domain.TeamRole, accepted *bool) error
	DeleteMember(ctx context.Context, memberID int64) error
	CountAcceptedAdmins(ctx context.Context, teamID int64) (int, error)
}
