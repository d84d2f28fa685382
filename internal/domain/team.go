package domain

import "time"

// TeamRole is a member's role within a team.
type TeamRole string

const (
	RoleAdmin   TeamRole = "admin"
	RoleMember  TeamRole = "member"
	RoleService TeamRole = "service"
	RoleView    TeamRole = "view"
)

// Valid reports whether r is one of the known roles.
func (r TeamRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleService, RoleView:
		return true
	}
	return false
}

// Team is a named group of users sharing resources. Teams are created
// explicitly and alongside every new user (the personal team); they are
// never deleted implicitly.
type Team struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMember links a user to a team. The (TeamID, UserID) pair is unique.
// Accepted is false for a pending invitation.
type TeamMember struct {
	ID        int64
	TeamID    int64
	UserID    int64
	InvitedBy int64
	Role      TeamRole
	Accepted  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
