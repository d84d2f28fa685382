package team

import (
	"context"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// UpdateMember changes a membership's role and/or acceptance flag. Role
// changes are admin-only; an acceptance-only patch is self-service for the
// membership's own user. A patch may not leave the team without an
// accepted admin.
type UpdateMember struct {
	teams ports.TeamRepository
	cache ports.MembershipCache
}

func NewUpdateMember(teams ports.TeamRepository, cache ports.MembershipCache) *UpdateMember {
	return &UpdateMember{teams: teams, cache: cache}
}

type UpdateMemberInput struct {
	TeamID   int64
	MemberID int64
	CallerID int64
	Role     *domain.TeamRole
	Accepted *bool
}

func (uc *UpdateMember) Execute(ctx context.Context, in UpdateMemberInput) (*domain.TeamMember, error) {
	team, err := uc.teams.GetByID(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domerrors.ErrNotFound
	}
	caller, err := uc.teams.GetMembership(ctx, in.TeamID, in.CallerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, domerrors.ErrNotFound
	}
	target, err := uc.teams.GetMemberByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.TeamID != in.TeamID {
		return nil, domerrors.ErrNotFound
	}
	if err := canUpdateMember(caller, target, in.Role, in.Accepted); err != nil {
		return nil, err
	}
	acceptedAdmins, err := uc.teams.CountAcceptedAdmins(ctx, in.TeamID)
	if err != nil {
		return nil, err
	}
	if err := canPatchStanding(target, in.Role, in.Accepted, acceptedAdmins); err != nil {
		return nil, err
	}
	if err := uc.teams.UpdateMember(ctx, target.ID, in.Role, in.Accepted); err != nil {
		return nil, err
	}
	if in.Role != nil {
		target.Role = *in.Role
	}
	if in.Accepted != nil {
		target.Accepted = *in.Accepted
	}
	uc.cache.Invalidate(target.UserID)
	return target, nil
}
