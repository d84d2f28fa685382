package domain

import "testing"

func TestTeamRoleValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role TeamRole
		want bool
	}{
		{RoleAdmin, true},
		{RoleMember, true},
		{RoleService, true},
		{RoleView, true},
		{TeamRole("owner"), false},
		{TeamRole(""), false},
		{TeamRole("Admin"), false},
	}
	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("TeamRole(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}
