package team

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// AddMember adds a user (looked up by username) to a team. The membership
// is created accepted, so an added admin immediately counts toward the
// team's accepted-admin floor.
type AddMember struct {
	teams ports.TeamRepository
	users ports.UserRepository
	cache ports.MembershipCache
	ids   *snowflake.Node
}

func NewAddMember(teams ports.TeamRepository, users ports.UserRepository, cache ports.MembershipCache, ids *snowflake.Node) *AddMember {
	return &AddMember{teams: teams, users: users, cache: cache, ids: ids}
}

type AddMemberInput struct {
	TeamID   int64
	CallerID int64
	Username string
	Role     domain.TeamRole
}

func (uc *AddMember) Execute(ctx context.Context, in AddMemberInput) (*domain.TeamMember, error) {
	team, err := uc.teams.GetByID(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domerrors.ErrNotFound
	}
	// Non-members get the same answer as a missing team.
	caller, err := uc.teams.GetMembership(ctx, in.TeamID, in.CallerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domerrors.ErrNotFound
	}
	if err := canAddMember(caller); err != nil {
		return nil, err
	}

	target, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domerrors.ErrNotFound
	}
	existing, err := uc.teams.GetMembership(ctx, in.TeamID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}

	now := time.Now()
	member := &domain.TeamMember{
		ID:        uc.ids.Generate().Int64(),
		TeamID:    in.TeamID,
		UserID:    target.ID,
		InvitedBy: in.CallerID,
		Role:      in.Role,
		Accepted:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.teams.InsertMember(ctx, member); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(target.ID)
	return member, nil
}
