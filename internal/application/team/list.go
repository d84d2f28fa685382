package team

import (
	"context"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// ListTeams returns the caller's teams, resolving ids through the
// membership cache.
type ListTeams struct {
	teams ports.TeamRepository
	cache ports.MembershipCache
}

func NewListTeams(teams ports.TeamRepository, cache ports.MembershipCache) *ListTeams {
	return &ListTeams{teams: teams, cache: cache}
}

func (uc *ListTeams) Execute(ctx context.Context, callerID int64) ([]*domain.Team, error) {
	teamIDs, err := uc.cache.TeamsOf(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		t, err := uc.teams.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListMembers returns a team's membership rows to any accepted member.
type ListMembers struct {
	teams ports.TeamRepository
}

func NewListMembers(teams ports.TeamRepository) *ListMembers {
	return &ListMembers{teams: teams}
}

func (uc *ListMembers) Execute(ctx context.Context, teamID, callerID int64) ([]*domain.TeamMember, error) {
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domerrors.ErrNotFound
	}
	caller, err := uc.teams.GetMembership(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domerrors.ErrNotFound
	}
	if err := canView(caller); err != nil {
		return nil, err
	}
	return uc.teams.ListMembers(ctx, teamID)
}
