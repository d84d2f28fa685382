package team

import (
	"github.com/jiggy-ai/jiggy-user-api/internal/domain"
	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// Pure authorization decisions over (caller membership, target, accepted
// admin count). No function here touches storage; the use cases gather the
// inputs and apply the verdict.

// canView requires an accepted membership of any role.
func canView(caller *domain.TeamMember) error {
	if caller == nil || !caller.Accepted {
		return domerrors.ErrForbidden
	}
	return nil
}

// canAddMember allows admins and regular members to invite.
func canAddMember(caller *domain.TeamMember) error {
	if caller == nil || !caller.Accepted {
		return domerrors.ErrForbidden
	}
	if caller.Role != domain.RoleAdmin && caller.Role != domain.RoleMember {
		return domerrors.ErrForbidden
	}
	return nil
}

// canUpdateMember requires the admin role, with one exception: a patch that
// touches ONLY the acceptance flag may be applied by the membership's own
// user regardless of role, so invitees can accept for themselves.
func canUpdateMember(caller, target *domain.TeamMember, role *domain.TeamRole, accepted *bool) error {
	if caller == nil {
		return domerrors.ErrForbidden
	}
	if caller.Role == domain.RoleAdmin && caller.Accepted {
		return nil
	}
	selfAcceptOnly := role == nil && accepted != nil && caller.UserID == target.UserID
	if selfAcceptOnly {
		return nil
	}
	return domerrors.ErrForbidden
}

// canPatchStanding guards role and acceptance changes the same way
// canRemoveMember guards deletes: a patch that would demote or un-accept
// the team's only accepted admin is rejected.
func canPatchStanding(target *domain.TeamMember, role *domain.TeamRole, accepted *bool, acceptedAdmins int) error {
	if target.Role != domain.RoleAdmin || !target.Accepted {
		return nil
	}
	demoted := role != nil && *role != domain.RoleAdmin
	revoked := accepted != nil && !*accepted
	if (demoted || revoked) && acceptedAdmins <= 1 {
		return domerrors.ErrLastAdmin
	}
	return nil
}

// canRemoveMember permits self-removal and admin-initiated removal, except
// that removing an accepted admin when the team has no other accepted admin
// is always rejected: a team must retain at least one administrator able to
// manage it. The guard applies whether the last admin is removing themself
// or being removed by another (unaccepted-admin) caller.
func canRemoveMember(caller, target *domain.TeamMember, acceptedAdmins int) error {
	isSelf := caller.UserID == target.UserID
	isAdmin := caller.Role == domain.RoleAdmin && caller.Accepted
	if !isSelf && !isAdmin {
		return domerrors.ErrForbidden
	}
	if target.Role == domain.RoleAdmin && target.Accepted && acceptedAdmins <= 1 {
		return domerrors.ErrLastAdmin
	}
	return nil
}
