package user

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/auth"
	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// Register creates a new account bound to an identity-provider subject.
// Only a provider-verified caller may register; a token minted from an API
// key already implies an existing account. The user, their personal team,
// the admin membership on it and an initial API key are created in one
// transaction.
type Register struct {
	users    ports.UserRepository
	provider ports.ProviderVerifier
	ids      *snowflake.Node
}

func NewRegister(users ports.UserRepository, provider ports.ProviderVerifier, ids *snowflake.Node) *Register {
	return &Register{users: users, provider: provider, ids: ids}
}

type RegisterResult struct {
	User *domain.User
	Key  *domain.APIKey
}

func (uc *Register) Execute(ctx context.Context, credential, username string) (*RegisterResult, error) {
	subject, err := uc.provider.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByAuth0Subject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}
	taken, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, domerrors.ErrConflict
	}

	secret, err := auth.GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	team := &domain.Team{
		ID:        uc.ids.Generate().Int64(),
		Name:      username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u := &domain.User{
		ID:            uc.ids.Generate().Int64(),
		Username:      username,
		Auth0Subject:  &subject,
		DefaultTeamID: team.ID,
		CreatedAt:     now,
	}
	member := &domain.TeamMember{
		ID:        uc.ids.Generate().Int64(),
		TeamID:    team.ID,
		UserID:    u.ID,
		InvitedBy: u.ID,
		Role:      domain.RoleAdmin,
		Accepted:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	key := &domain.APIKey{
		Key:       secret,
		UserID:    u.ID,
		CreatedAt: now,
		LastUsed:  now,
	}
	if err := uc.users.Register(ctx, u, team, member, key); err != nil {
		return nil, err
	}
	return &RegisterResult{User: u, Key: key}, nil
}
