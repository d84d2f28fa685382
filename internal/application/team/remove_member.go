package team

import (
	"context"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// RemoveMember deletes a membership. Permitted for the membership's own
// user and for team admins, subject to the last-admin guard.
type RemoveMember struct {
	teams ports.TeamRepository
	cache ports.MembershipCache
}

func NewRemoveMember(teams ports.TeamRepository, cache ports.MembershipCache) *RemoveMember {
	return &RemoveMember{teams: teams, cache: cache}
}

func (uc *RemoveMember) Execute(ctx context.Context, teamID, memberID, callerID int64) error {
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domerrors.ErrNotFound
	}
	caller, err := uc.teams.GetMembership(ctx, teamID, callerID)
	if err != nil {
		return err
	}
	if caller == nil {
		return domerrors.ErrNotFound
	}
	target, err := uc.teams.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if target == nil || target.TeamID != teamID {
		return domerrors.ErrNotFound
	}
	acceptedAdmins, err := uc.teams.CountAcceptedAdmins(ctx, teamID)
	if err != nil {
		return err
	}
	if err := canRemoveMember(caller, target, acceptedAdmins); err != nil {
		return err
	}
	if err := uc.teams.DeleteMember(ctx, target.ID); err != nil {
		return err
	}
	uc.cache.Invalidate(target.UserID)
	return nil
}
