package team

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// CreateTeam creates a team with a globally unique name. The creator becomes
// its sole admin member with the membership already accepted; only invited
// members go through the pending-acceptance state.
type CreateTeam struct {
	teams ports.TeamRepository
	cache ports.MembershipCache
	ids   *snowflake.Node
}

func NewCreateTeam(teams ports.TeamRepository, cache ports.MembershipCache, ids *snowflake.Node) *CreateTeam {
	return &CreateTeam{teams: teams, cache: cache, ids: ids}
}

func (uc *CreateTeam) Execute(ctx context.Context, callerID int64, name, description string) (*domain.Team, error) {
	existing, err := uc.teams.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}

	now := time.Now()
	team := &domain.Team{
		ID:          uc.ids.Generate().Int64(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	member := &domain.TeamMember{
		ID:        uc.ids.Generate().Int64(),
		TeamID:    team.ID,
		UserID:    callerID,
		InvitedBy: callerID,
		Role:      domain.RoleAdmin,
		Accepted:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// The unique index on team name closes the check-then-insert race; the
	// repository maps that violation back to a conflict.
	if err := uc.teams.CreateWithAdmin(ctx, team, member); err != nil {
		return nil, err
	}
	uc.cache.Invalidate(callerID)
	return team, nil
}
